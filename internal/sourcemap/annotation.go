package sourcemap

import (
	"encoding/base64"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// DataURIPrefix starts every inline map annotation written by Inline.
const DataURIPrefix = "data:application/json;base64,"

// ErrMalformedDataURI is returned when an inline annotation has no base64 payload.
var ErrMalformedDataURI = zerr.New("malformed source map data URI")

// trailingAnnotation only matches a comment that closes the stylesheet, so a
// sourceMappingURL comment quoted inside the body is never picked up.
var trailingAnnotation = regexp.MustCompile(`/\*# sourceMappingURL=(\S+)\s*\*/\s*$`)

// FindAnnotation returns the URL of the annotation comment at the end of css.
func FindAnnotation(css string) (string, bool) {
	m := trailingAnnotation.FindStringSubmatch(css)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsDataURI reports whether an annotation URL embeds the map itself.
func IsDataURI(url string) bool {
	return strings.HasPrefix(url, "data:")
}

// DecodeDataURI returns the map content embedded after the "base64," marker.
func DecodeDataURI(url string) ([]byte, error) {
	_, payload, ok := strings.Cut(url, "base64,")
	if !ok {
		return nil, ErrMalformedDataURI
	}

	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Unpadded payloads are common in hand-written annotations.
		if raw, rawErr := base64.RawStdEncoding.DecodeString(payload); rawErr == nil {
			return raw, nil
		}
		return nil, zerr.Wrap(err, ErrMalformedDataURI.Error())
	}
	return b, nil
}

// Annotation returns the comment that links CSS to a map at url, including
// the leading newline.
func Annotation(url string) string {
	return "\n/*# sourceMappingURL=" + url + " */"
}

// Inline returns the annotation comment embedding content as a data URI.
func Inline(content []byte) string {
	return Annotation(DataURIPrefix + base64.StdEncoding.EncodeToString(content))
}

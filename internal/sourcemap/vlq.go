package sourcemap

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

const (
	vlqBaseShift    = 5
	vlqBase         = 1 << vlqBaseShift
	vlqBaseMask     = vlqBase - 1
	vlqContinuation = vlqBase
)

var base64Index = func() [256]int8 {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(base64Chars); i++ {
		idx[base64Chars[i]] = int8(i)
	}
	return idx
}()

// appendVLQ appends the base64 VLQ encoding of value to dst.
func appendVLQ(dst []byte, value int) []byte {
	vlq := value << 1
	if value < 0 {
		vlq = (-value << 1) | 1
	}

	for {
		digit := vlq & vlqBaseMask
		vlq >>= vlqBaseShift
		if vlq > 0 {
			digit |= vlqContinuation
		}
		dst = append(dst, base64Chars[digit])
		if vlq == 0 {
			return dst
		}
	}
}

// decodeVLQ decodes one base64 VLQ value starting at s[pos] and returns it along
// with the position of the next unread byte.
func decodeVLQ(s string, pos int) (value, next int, err error) {
	var result, shift int
	for {
		if pos >= len(s) {
			return 0, pos, ErrInvalidMappings
		}
		digit := base64Index[s[pos]]
		if digit < 0 {
			return 0, pos, ErrInvalidMappings
		}
		pos++

		result += int(digit&vlqBaseMask) << shift
		shift += vlqBaseShift
		if digit&vlqContinuation == 0 {
			break
		}
	}

	if result&1 == 1 {
		return -(result >> 1), pos, nil
	}
	return result >> 1, pos, nil
}

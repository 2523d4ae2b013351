// Package sourcemap reads, rewrites and serialises version 3 source maps and the
// sourceMappingURL annotations that point at them.
package sourcemap

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidMappings is returned when the mappings field cannot be decoded.
	ErrInvalidMappings = zerr.New("invalid source map mappings")

	// ErrUnsupportedVersion is returned for maps that are not version 3.
	ErrUnsupportedVersion = zerr.New("unsupported source map version")

	// ErrInvalidSegment is returned when a segment references a source or name
	// that the map does not declare.
	ErrInvalidSegment = zerr.New("source map segment out of range")
)

// Map is a version 3 source map. The field order matches the order in which
// other tools emit the keys, so serialised maps diff cleanly against theirs.
type Map struct {
	Version        int       `json:"version"`
	Sources        []string  `json:"sources"`
	Names          []string  `json:"names"`
	Mappings       string    `json:"mappings"`
	File           string    `json:"file,omitempty"`
	SourceRoot     string    `json:"sourceRoot,omitempty"`
	SourcesContent []*string `json:"sourcesContent,omitempty"`
}

// Segment is one decoded mapping. Lines and columns are zero-based.
type Segment struct {
	GenLine   int
	GenColumn int
	// Source is an index into Map.Sources, or -1 for a segment without origin.
	Source int
	Line   int
	Column int
	// Name is an index into Map.Names, or -1.
	Name int
}

// Parse decodes a source map from its JSON text.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.Wrap(err, "failed to parse source map")
	}
	if m.Version != 3 {
		return nil, zerr.With(zerr.Wrap(ErrUnsupportedVersion, "failed to parse source map"), "version", m.Version)
	}
	return &m, nil
}

// Segments decodes the mappings of m.
func (m *Map) Segments() ([]Segment, error) {
	segs, err := DecodeMappings(m.Mappings)
	if err != nil {
		return nil, err
	}
	for _, seg := range segs {
		if seg.Source >= len(m.Sources) || seg.Name >= len(m.Names) {
			return nil, zerr.With(zerr.Wrap(ErrInvalidSegment, "failed to decode mappings"), "line", seg.GenLine)
		}
	}
	return segs, nil
}

// SetSegments replaces the mappings of m with segs, ordered by generated position.
func (m *Map) SetSegments(segs []Segment) {
	slices.SortStableFunc(segs, func(a, b Segment) int {
		if c := cmp.Compare(a.GenLine, b.GenLine); c != 0 {
			return c
		}
		return cmp.Compare(a.GenColumn, b.GenColumn)
	})
	m.Mappings = EncodeMappings(segs)
}

// Bytes serialises m to JSON without HTML escaping.
func (m *Map) Bytes() ([]byte, error) {
	out := *m
	if out.Sources == nil {
		out.Sources = []string{}
	}
	if out.Names == nil {
		out.Names = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&out); err != nil {
		return nil, zerr.Wrap(err, "failed to serialise source map")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// String returns the JSON form of m, or an empty string if it cannot be encoded.
func (m *Map) String() string {
	b, err := m.Bytes()
	if err != nil {
		return ""
	}
	return string(b)
}

// DecodeMappings decodes a mappings string into segments.
func DecodeMappings(mappings string) ([]Segment, error) {
	var (
		segs                             []Segment
		genLine, genCol                  int
		source, line, column, nameOffset int
	)

	for i := 0; i < len(mappings); {
		switch mappings[i] {
		case ';':
			genLine++
			genCol = 0
			i++
			continue
		case ',':
			i++
			continue
		}

		var fields [5]int
		n := 0
		for i < len(mappings) && mappings[i] != ',' && mappings[i] != ';' {
			if n == len(fields) {
				return nil, zerr.With(zerr.Wrap(ErrInvalidMappings, "failed to decode mappings"), "line", genLine)
			}
			v, next, err := decodeVLQ(mappings, i)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to decode mappings"), "line", genLine)
			}
			fields[n] = v
			n++
			i = next
		}
		if n != 1 && n != 4 && n != 5 {
			return nil, zerr.With(zerr.Wrap(ErrInvalidMappings, "failed to decode mappings"), "line", genLine)
		}

		genCol += fields[0]
		seg := Segment{GenLine: genLine, GenColumn: genCol, Source: -1, Name: -1}
		if n >= 4 {
			source += fields[1]
			line += fields[2]
			column += fields[3]
			seg.Source, seg.Line, seg.Column = source, line, column
		}
		if n == 5 {
			nameOffset += fields[4]
			seg.Name = nameOffset
		}
		segs = append(segs, seg)
	}

	return segs, nil
}

// EncodeMappings encodes segments, which must be ordered by generated position.
func EncodeMappings(segs []Segment) string {
	var (
		buf                                 []byte
		prevLine, prevCol                   int
		prevSource, prevSrcLine, prevSrcCol int
		prevName                            int
	)

	for i, seg := range segs {
		if seg.GenLine != prevLine {
			for prevLine < seg.GenLine {
				buf = append(buf, ';')
				prevLine++
			}
			prevCol = 0
		} else if i > 0 {
			buf = append(buf, ',')
		}

		buf = appendVLQ(buf, seg.GenColumn-prevCol)
		prevCol = seg.GenColumn

		if seg.Source < 0 {
			continue
		}
		buf = appendVLQ(buf, seg.Source-prevSource)
		buf = appendVLQ(buf, seg.Line-prevSrcLine)
		buf = appendVLQ(buf, seg.Column-prevSrcCol)
		prevSource, prevSrcLine, prevSrcCol = seg.Source, seg.Line, seg.Column

		if seg.Name >= 0 {
			buf = appendVLQ(buf, seg.Name-prevName)
			prevName = seg.Name
		}
	}

	return string(buf)
}

package sourcemap

import (
	"cmp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// ApplySourceMap composes m with an earlier map. Every segment of m that points
// into sourceFile is redirected to the position the input map records for it;
// segments the input map cannot resolve keep pointing at sourceFile. Sources and
// names are rebuilt in order of first use and sourcesContent is carried over from
// both maps, the input map taking precedence.
func (m *Map) ApplySourceMap(input []byte, sourceFile string) error {
	in, err := Parse(input)
	if err != nil {
		return zerr.Wrap(err, "failed to parse input source map")
	}
	inSegs, err := in.Segments()
	if err != nil {
		return zerr.Wrap(err, "failed to decode input source map")
	}
	lookup := newLineIndex(inSegs)

	segs, err := m.Segments()
	if err != nil {
		return err
	}

	contents := make(map[string]*string, len(m.Sources)+len(in.Sources))
	for i, src := range m.Sources {
		if i < len(m.SourcesContent) && m.SourcesContent[i] != nil {
			contents[src] = m.SourcesContent[i]
		}
	}
	inSources := make([]string, len(in.Sources))
	for i, src := range in.Sources {
		inSources[i] = joinSourceRoot(in.SourceRoot, src)
		if i < len(in.SourcesContent) && in.SourcesContent[i] != nil {
			contents[inSources[i]] = in.SourcesContent[i]
		}
	}

	var (
		sources   []string
		names     []string
		sourceIdx = make(map[string]int)
		nameIdx   = make(map[string]int)
	)
	intern := func(list *[]string, idx map[string]int, value string) int {
		if i, ok := idx[value]; ok {
			return i
		}
		idx[value] = len(*list)
		*list = append(*list, value)
		return idx[value]
	}

	for i, seg := range segs {
		if seg.Source < 0 {
			continue
		}

		source := m.Sources[seg.Source]
		line, column := seg.Line, seg.Column
		name := ""
		if seg.Name >= 0 {
			name = m.Names[seg.Name]
		}

		if source == sourceFile {
			if orig, ok := lookup.find(line, column); ok {
				source, line, column = inSources[orig.Source], orig.Line, orig.Column
				if orig.Name >= 0 {
					name = in.Names[orig.Name]
				}
			}
		}

		seg.Source = intern(&sources, sourceIdx, source)
		seg.Line, seg.Column = line, column
		seg.Name = -1
		if name != "" {
			seg.Name = intern(&names, nameIdx, name)
		}
		segs[i] = seg
	}

	m.Sources = sources
	m.Names = names
	m.SourcesContent = nil
	for i, src := range sources {
		content, ok := contents[src]
		if !ok {
			continue
		}
		if m.SourcesContent == nil {
			m.SourcesContent = make([]*string, len(sources))
		}
		m.SourcesContent[i] = content
	}
	m.SetSegments(segs)

	return nil
}

// lineIndex holds the segments of a map grouped by generated line and ordered
// by generated column.
type lineIndex map[int][]Segment

func newLineIndex(segs []Segment) lineIndex {
	idx := make(lineIndex)
	for _, seg := range segs {
		idx[seg.GenLine] = append(idx[seg.GenLine], seg)
	}
	for _, line := range idx {
		slices.SortStableFunc(line, func(a, b Segment) int {
			return cmp.Compare(a.GenColumn, b.GenColumn)
		})
	}
	return idx
}

// find returns the last segment on line that starts at or before column. A
// match never crosses into another line, and a segment without origin is no
// match.
func (idx lineIndex) find(line, column int) (Segment, bool) {
	segs := idx[line]
	i, found := slices.BinarySearchFunc(segs, column, func(s Segment, col int) int {
		return cmp.Compare(s.GenColumn, col)
	})
	if found {
		// Several segments may share a column; take the last of them.
		for i+1 < len(segs) && segs[i+1].GenColumn == column {
			i++
		}
	} else {
		i--
	}
	if i < 0 || segs[i].Source < 0 {
		return Segment{}, false
	}
	return segs[i], true
}

func joinSourceRoot(root, source string) string {
	if root == "" {
		return source
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root + source
}

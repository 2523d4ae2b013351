package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"go.trai.ch/csso/internal/ui/output"
	"go.trai.ch/csso/internal/ui/style"
)

// Stats describes one finished pass.
type Stats struct {
	// Filename is the input name as shown to the user.
	Filename string
	// MapOrigin is where the input map came from, empty when none was used.
	MapOrigin string
	// Original is the input size in bytes.
	Original int
	// Result is the output size in bytes, annotation included.
	Result int
	// Annotation is the size of the sourceMappingURL comment.
	Annotation int
	// Elapsed is the wall time of the pass.
	Elapsed time.Duration
	// HeapDelta is the change of allocated heap bytes during the pass.
	HeapDelta int64
}

// WriteStats prints s in the layout of the --stat report.
func WriteStats(w io.Writer, s Stats) {
	out := output.New(w)
	line := func(label, format string, args ...any) {
		_, _ = fmt.Fprintf(out, "%s %s\n", output.Paint(out, fmt.Sprintf("%-11s", label), style.Term(style.Slate)), fmt.Sprintf(format, args...))
	}

	compressed := s.Result - s.Annotation

	line("Source:", "%s", s.Filename)
	if s.MapOrigin != "" {
		line("Map source:", "%s", s.MapOrigin)
	}
	line("Original:", "%s bytes", formatSize(s.Original))
	line("Compressed:", "%s bytes (%s%%)", formatSize(compressed), percent(compressed, s.Original))
	saving := fmt.Sprintf("%s bytes (%s%%)", formatSize(s.Original-compressed), percent(s.Original-compressed, s.Original))
	line("Saving:", "%s", output.Paint(out, saving, style.Term(style.Green)))
	if s.Annotation > 0 {
		line("Source map:", "%s bytes (%s%% of total)", formatSize(s.Annotation), percent(s.Annotation, s.Result))
		line("Total:", "%s bytes", formatSize(s.Result))
	}
	line("Time:", "%d ms", s.Elapsed.Milliseconds())
	line("Memory:", "%.3f MB", float64(s.HeapDelta)/(1024*1024))
}

// formatSize groups the digits of n in threes separated by spaces.
func formatSize(n int) string {
	digits := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}

	var b []byte
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b = append(b, ' ')
		}
		b = append(b, digits[i])
	}
	return sign + string(b)
}

func percent(part, total int) string {
	if total == 0 {
		return "0.00"
	}
	return strconv.FormatFloat(100*float64(part)/float64(total), 'f', 2, 64)
}

package markup

import "strings"

// Delimiter marks the start and end of an emphasized span.
const Delimiter = "**"

// Run is a span of text that is either emphasized or plain.
type Run struct {
	Text       string
	Emphasized bool
}

// ParseInline splits s into runs on ** delimiters.
// Delimiters do not nest. A ** with no closing partner is kept as literal
// text in a plain run. Empty emphasized spans produce no run.
func ParseInline(s string) []Run {
	var runs []Run
	rest := s

	for rest != "" {
		open := strings.Index(rest, Delimiter)
		if open == -1 {
			runs = append(runs, Run{Text: rest})
			break
		}

		if open > 0 {
			runs = append(runs, Run{Text: rest[:open]})
		}

		inner := rest[open+len(Delimiter):]
		closeIdx := strings.Index(inner, Delimiter)
		if closeIdx == -1 {
			// Unterminated: keep the marker and everything after it verbatim.
			runs = append(runs, Run{Text: rest[open:]})
			break
		}

		if closeIdx > 0 {
			runs = append(runs, Run{Text: inner[:closeIdx], Emphasized: true})
		}
		rest = inner[closeIdx+len(Delimiter):]
	}

	return mergeRuns(runs)
}

// mergeRuns joins adjacent runs with the same emphasis.
// Adjacent plain runs appear when an unterminated marker follows plain text.
func mergeRuns(runs []Run) []Run {
	if len(runs) < 2 {
		return runs
	}
	merged := runs[:1]
	for _, r := range runs[1:] {
		last := &merged[len(merged)-1]
		if last.Emphasized == r.Emphasized {
			last.Text += r.Text
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// PlainText concatenates run text, dropping emphasis.
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// HasEmphasis reports whether any run is emphasized.
func HasEmphasis(runs []Run) bool {
	for _, r := range runs {
		if r.Emphasized {
			return true
		}
	}
	return false
}

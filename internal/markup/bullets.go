package markup

import (
	"strings"
	"unicode"
)

// BulletBlock is slide content split into an optional heading and bullets.
type BulletBlock struct {
	Heading string
	Bullets []string
}

// IsEmpty reports whether the block has neither a heading nor bullets.
func (b BulletBlock) IsEmpty() bool {
	return b.Heading == "" && len(b.Bullets) == 0
}

// ExtractBullets splits content on commas and newlines into a heading and bullets.
//
// The first line that carries a ** pair and a colon becomes the heading, with
// its markup and trailing colon removed. Later lines of that shape stay in the
// bullet list untouched. When no such line exists, the first bullet is
// promoted to the heading.
func ExtractBullets(content string) BulletBlock {
	var block BulletBlock
	headingFound := false

	for _, line := range splitLines(content) {
		if isHeadingCandidate(line) {
			if !headingFound {
				block.Heading = cleanHeading(line)
				headingFound = true
				continue
			}
		}
		block.Bullets = append(block.Bullets, line)
	}

	if !headingFound && len(block.Bullets) > 0 {
		block.Heading = block.Bullets[0]
		block.Bullets = block.Bullets[1:]
	}
	if len(block.Bullets) == 0 {
		block.Bullets = nil
	}

	return block
}

// splitLines splits on commas and newlines, trims, and drops empty lines.
func splitLines(content string) []string {
	fields := strings.FieldsFunc(content, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if line := strings.TrimSpace(f); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// isHeadingCandidate reports whether line has a ** pair and a colon.
func isHeadingCandidate(line string) bool {
	return strings.Count(line, Delimiter) >= 2 && strings.Contains(line, ":")
}

// cleanHeading strips all ** markers and one trailing colon with any
// whitespace after it.
func cleanHeading(line string) string {
	s := strings.ReplaceAll(line, Delimiter, "")
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	s = strings.TrimSuffix(s, ":")
	return strings.TrimSpace(s)
}

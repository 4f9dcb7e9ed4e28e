package extract

import (
	"path"
	"strings"
	"unicode/utf8"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/codefolio/pkg/loc"
)

// DefaultIndentWidth is the number of spaces that make one depth level.
const DefaultIndentWidth = 2

// Depth returns the indentation level of line. A tab counts as one level and
// every indentWidth spaces as another.
func Depth(line string, indentWidth int) int {
	if indentWidth <= 0 {
		indentWidth = DefaultIndentWidth
	}

	tabs, spaces := 0, 0

	for _, r := range line {
		switch r {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			return tabs + spaces/indentWidth
		}
	}

	return tabs + spaces/indentWidth
}

// Length returns the number of characters of line without its line ending.
func Length(line string) int {
	return utf8.RuneCountInString(strings.TrimRight(line, "\r\n"))
}

// FileType returns the category of a file: its extension without the dot,
// or, when byLanguage is set, the lowercase enry language name.
func FileType(name string, contents []byte, byLanguage bool) string {
	if byLanguage {
		lang := enry.GetLanguage(path.Base(name), contents)
		if lang != "" {
			return strings.ToLower(lang)
		}
	}

	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return loc.TypeOther
	}

	return strings.ToLower(ext)
}

// Skip reports whether a file is left out of the dataset: vendored, binary
// or under one of the skip prefixes.
func Skip(name string, contents []byte, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return enry.IsVendor(name) || enry.IsBinary(contents)
}

// SplitLines splits contents into lines, keeping a final line that has no
// trailing newline.
func SplitLines(contents []byte) []string {
	if len(contents) == 0 {
		return nil
	}

	lines := strings.SplitAfter(string(contents), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/codefolio/internal/extract"
)

func TestDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line  string
		width int
		want  int
	}{
		{line: "body {", width: 2, want: 0},
		{line: "  color: red;", width: 2, want: 1},
		{line: "      deep();", width: 2, want: 3},
		{line: "    four", width: 4, want: 1},
		{line: "\t\ttabs", width: 2, want: 2},
		{line: "\t  mixed", width: 2, want: 2},
		{line: "   odd", width: 2, want: 1},
		{line: "    ", width: 2, want: 2},
		{line: "  x", width: 0, want: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extract.Depth(tt.line, tt.width), "%q", tt.line)
	}
}

func TestLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, extract.Length("hello\n"))
	assert.Equal(t, 5, extract.Length("hello\r\n"))
	assert.Equal(t, 0, extract.Length("\n"))
	assert.Equal(t, 4, extract.Length("café"))
}

func TestFileType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "js", extract.FileType("lib/global.js", nil, false))
	assert.Equal(t, "css", extract.FileType("style.CSS", nil, false))
	assert.Equal(t, "other", extract.FileType("Makefile", nil, false))
	assert.Equal(t, "javascript", extract.FileType("lib/global.js", []byte("let x = 1;\n"), true))
}

func TestSkip(t *testing.T) {
	t.Parallel()

	assert.True(t, extract.Skip("node_modules/d3/index.js", []byte("x"), nil))
	assert.True(t, extract.Skip("images/logo.png", []byte{0x89, 'P', 'N', 'G', 0, 0, 0}, nil))
	assert.True(t, extract.Skip("dist/app.js", []byte("x"), []string{"dist/"}))
	assert.False(t, extract.Skip("index.html", []byte("<html></html>\n"), nil))
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	assert.Nil(t, extract.SplitLines(nil))
	assert.Equal(t, []string{"a\n", "b\n"}, extract.SplitLines([]byte("a\nb\n")))
	assert.Equal(t, []string{"a\n", "b"}, extract.SplitLines([]byte("a\nb")))
	assert.Equal(t, []string{"\n"}, extract.SplitLines([]byte("\n")))
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "  The   Eiffel Tower\n\nis in Paris.  ", "The Eiffel Tower is in Paris."},
		{"entities", "Salt &amp; pepper", "Salt & pepper"},
		{"html", "<p>Water boils at <b>100</b> degrees.</p><script>alert(1)</script>", "Water boils at 100 degrees."},
		{"angle brackets in text", "3 < 5 and 7 > 2", "3 < 5 and 7 > 2"},
		{"blank", " \t\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preprocess(tt.input))
		})
	}
}

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, LooksLikeHTML("<div class=\"x\">hi</div>"))
	assert.True(t, LooksLikeHTML("line<br/>break"))
	assert.False(t, LooksLikeHTML("if a < b then c > d"))
	assert.False(t, LooksLikeHTML("plain text"))
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/news/article"))
	assert.True(t, IsURL("  http://example.com  "))
	assert.False(t, IsURL("example.com"))
	assert.False(t, IsURL("ftp://example.com/file"))
	assert.False(t, IsURL("see https://example.com for more"))
	assert.False(t, IsURL(""))
}

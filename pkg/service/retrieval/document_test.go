package retrieval

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestExtractText(t *testing.T) {
	t.Run("collects visible text and skips scripts", func(t *testing.T) {
		doc := `<html><head>
			<style>body { color: red; }</style>
			<script>console.log("hidden");</script>
		</head><body>
			<h1>Refund policy</h1>
			<p>Refunds are issued within
			5 business days.</p>
		</body></html>`

		text, err := extractText(strings.NewReader(doc))
		gt.NoError(t, err).Required()

		gt.Value(t, text).Equal("Refund policy Refunds are issued within 5 business days.")
	})

	t.Run("plain text passes through", func(t *testing.T) {
		text, err := extractText(strings.NewReader("just words"))
		gt.NoError(t, err).Required()
		gt.Value(t, text).Equal("just words")
	})
}

func TestSplitText(t *testing.T) {
	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks := splitText("short", 10, 3)
		gt.Array(t, chunks).Length(1).Required()
		gt.Value(t, chunks[0]).Equal("short")
	})

	t.Run("empty text has no chunks", func(t *testing.T) {
		gt.Array(t, splitText("", 10, 3)).Length(0)
	})

	t.Run("long text overlaps at chunk boundaries", func(t *testing.T) {
		chunks := splitText("abcdefghijklmnop", 10, 3)

		gt.Array(t, chunks).Length(2).Required()
		gt.Value(t, chunks[0]).Equal("abcdefghij")
		gt.Value(t, chunks[1]).Equal("hijklmnop")
	})

	t.Run("every chunk stays within the size limit", func(t *testing.T) {
		text := strings.Repeat("0123456789", 30)
		chunks := splitText(text, 100, 20)

		for _, chunk := range chunks {
			if len([]rune(chunk)) > 100 {
				t.Errorf("chunk exceeds size limit: %d runes", len([]rune(chunk)))
			}
		}
	})
}

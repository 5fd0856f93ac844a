package retrieval

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/net/html"

	"github.com/hatchpay/concierge/pkg/utils/safe"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// fetchDocument downloads a knowledge source and returns its plain text.
// HTML documents are reduced to their visible text; anything else is taken
// as-is.
func fetchDocument(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create request", goerr.V("url", url))
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch document", goerr.V("url", url))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected status fetching document",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode))
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return extractText(resp.Body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read document body", goerr.V("url", url))
	}
	return string(body), nil
}

// extractText walks an HTML document and collects its visible text, skipping
// script and style blocks. Runs of whitespace collapse to single spaces.
func extractText(r io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(r)

	var sb strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return sb.String(), nil
			}
			return "", goerr.Wrap(tokenizer.Err(), "failed to parse HTML")

		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				skipDepth++
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				if skipDepth > 0 {
					skipDepth--
				}
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(strings.Join(strings.Fields(text), " "))
		}
	}
}

// splitText cuts text into overlapping chunks so sentences that straddle a
// boundary still appear whole in one of the neighboring chunks.
func splitText(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

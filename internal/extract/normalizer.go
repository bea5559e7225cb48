package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Normalizer cleans free-text description fields before they enter a
// record. Notice descriptions routinely embed HTML markup and irregular
// whitespace.
type Normalizer interface {
	Normalize(content string) (string, error)
}

type SimpleNormalizer struct{}

func NewSimpleNormalizer() *SimpleNormalizer {
	return &SimpleNormalizer{}
}

func (n *SimpleNormalizer) Normalize(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	text := extractText(doc)
	normalized := strings.Join(strings.Fields(text), " ")
	return normalized, nil
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return ""
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(extractText(c))
		b.WriteString(" ")
	}
	return b.String()
}

var descNormalizer = NewSimpleNormalizer()

// cleanOptional normalizes an optional description. The raw value is kept
// when normalization fails or empties it out.
func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned, err := descNormalizer.Normalize(*s)
	if err != nil || cleaned == "" {
		return s
	}
	return &cleaned
}

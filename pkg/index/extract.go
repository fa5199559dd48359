package index

import (
	"bytes"
	"net/url"

	"golang.org/x/net/html"
)

// ExtractLinks parses an HTML document and returns the absolute URLs of all
// anchors marked rel="internal", in document order.
//
// Anchors without attributes, without a rel="internal" attribute, or without
// an href are skipped. Relative hrefs are resolved against base. Parsing is
// best-effort: malformed markup never produces an error, only fewer links.
func ExtractLinks(body []byte, base *url.URL) []string {
	var links []string

	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return links
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		tok := z.Token()
		if tok.Data != "a" || len(tok.Attr) == 0 {
			continue
		}
		if !isInternal(tok.Attr) {
			continue
		}

		for _, attr := range tok.Attr {
			if attr.Key != "href" {
				continue
			}
			ref, err := url.Parse(attr.Val)
			if err != nil {
				continue
			}
			links = append(links, base.ResolveReference(ref).String())
		}
	}
}

func isInternal(attrs []html.Attribute) bool {
	for _, attr := range attrs {
		if attr.Key == "rel" && attr.Val == "internal" {
			return true
		}
	}
	return false
}

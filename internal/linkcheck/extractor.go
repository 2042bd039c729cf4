// Package linkcheck verifies that internal links inside a built site
// resolve to files in the output directory.
package linkcheck

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Link is one reference extracted from a built HTML page.
type Link struct {
	URL       string
	Text      string
	Tag       string
	Attribute string
	Internal  bool
}

// linkAttrs maps the tags we extract from to the attribute carrying
// the reference.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"video":  "src",
	"audio":  "src",
	"source": "src",
}

// ExtractLinks parses HTML and returns every link reference found.
func ExtractLinks(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr, ok := linkAttrs[n.Data]; ok {
				if value := getAttr(n, attr); value != "" {
					links = append(links, Link{
						URL:       value,
						Text:      nodeText(n),
						Tag:       n.Data,
						Attribute: attr,
						Internal:  isInternal(value),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return strings.TrimSpace(b.String())
}

// isInternal reports whether a reference points inside the site.
// Fragment-only and special-protocol references are not checkable and
// count as external here.
func isInternal(link string) bool {
	switch {
	case link == "", strings.HasPrefix(link, "#"):
		return false
	case strings.HasPrefix(link, "mailto:"),
		strings.HasPrefix(link, "tel:"),
		strings.HasPrefix(link, "javascript:"),
		strings.HasPrefix(link, "data:"):
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

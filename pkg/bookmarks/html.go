package bookmarks

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/entrhq/tabresumer/pkg/profile"
)

// ErrNoTitle is returned when a document has no usable <title>.
var ErrNoTitle = errors.New("bookmarks: document has no title")

// ExtractTitle returns the trimmed text of the first <title> element.
func ExtractTitle(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("bookmarks: parse html: %w", err)
	}

	node := findFirst(doc, "title")
	if node == nil {
		return "", ErrNoTitle
	}
	title := collapseSpace(textOf(node))
	if title == "" {
		return "", ErrNoTitle
	}
	return title, nil
}

// ParseNetscape reads a Netscape bookmark file and returns one pair per
// link. Links without HREF are skipped, empty titles become
// profile.MissingTitle, and ADD_DATE (Unix seconds) sets the creation time.
// Links without a usable ADD_DATE are stamped with now.
func ParseNetscape(r io.Reader, now time.Time) ([]profile.Pair, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("bookmarks: parse html: %w", err)
	}

	var pairs []profile.Pair
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if pair, ok := pairFromAnchor(n, now); ok {
				pairs = append(pairs, pair)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return pairs, nil
}

func pairFromAnchor(n *html.Node, now time.Time) (profile.Pair, bool) {
	var href, added string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "href":
			href = strings.TrimSpace(attr.Val)
		case "add_date":
			added = attr.Val
		}
	}
	if href == "" {
		return profile.Pair{}, false
	}

	title := collapseSpace(textOf(n))
	if title == "" {
		title = profile.MissingTitle
	}

	created := now
	if secs, err := strconv.ParseInt(strings.TrimSpace(added), 10, 64); err == nil && secs > 0 {
		created = time.Unix(secs, 0).UTC()
	}
	return profile.NewPairAt(href, title, created), true
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package htmlutil

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under node.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// CleanText returns the printable, whitespace-collapsed text of a
// selection. An empty selection yields "", which the parsers treat as a
// missing field rather than an error.
func CleanText(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	text := GetText(sel.Get(0))
	out := strings.Builder{}
	lastSpace := false
	for _, c := range text {
		if unicode.IsSpace(c) {
			if !lastSpace && out.Len() > 0 {
				out.WriteRune(' ')
			}
			lastSpace = true
			continue
		}
		if !unicode.IsPrint(c) {
			continue
		}
		out.WriteRune(c)
		lastSpace = false
	}
	return strings.TrimSpace(out.String())
}

// CellText returns the cleaned text of the n-th (1-based) td child of a
// table row selection, "" when the cell is absent.
func CellText(row *goquery.Selection, n int) string {
	cell := row.Find("td").Eq(n - 1)
	return CleanText(cell)
}

// FirstHref returns the href of the first anchor under sel, "" when no
// anchor exists.
func FirstHref(sel *goquery.Selection) string {
	href, _ := sel.Find("a").First().Attr("href")
	return href
}

package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func select_(t *testing.T, html, sel string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Find(sel)
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		name     string
		html     string
		sel      string
		expected string
	}{
		{
			name:     "collapses whitespace",
			html:     "<div>  Keller,\n\t Anna  </div>",
			sel:      "div",
			expected: "Keller, Anna",
		},
		{
			name:     "nested elements",
			html:     "<td><span>01:45:00</span></td>",
			sel:      "td",
			expected: "01:45:00",
		},
		{
			name:     "empty selection",
			html:     "<div></div>",
			sel:      "span",
			expected: "",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expected, CleanText(select_(t, c.html, c.sel)))
		})
	}
}

func TestCellText(t *testing.T) {
	row := select_(t, "<table><tr><td>a</td><td>b</td><td> c </td></tr></table>", "tr")
	require.Equal(t, "a", CellText(row, 1))
	require.Equal(t, "c", CellText(row, 3))
	require.Equal(t, "", CellText(row, 9))
}

func TestFirstHref(t *testing.T) {
	sel := select_(t, `<div><a href="?idp=X1">one</a><a href="?idp=X2">two</a></div>`, "div")
	require.Equal(t, "?idp=X1", FirstHref(sel))

	empty := select_(t, "<div>plain</div>", "div")
	require.Equal(t, "", FirstHref(empty))
}

package mika

import (
	"context"
	"fmt"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"marathondata/lib/htmlutil"
)

// MaxPages fetches the first result page of each gender and reads the
// page count out of the pagination widget. The two counts are independent:
// a marathon always has different men and women page totals.
//
// This is the fragile part of the integration: the widget's shape is an
// external contract that changes with site redesigns.
func (c *Client) MaxPages(ctx context.Context, menFirstPage, womenFirstPage string, p EraProfile) (men int, women int, err error) {
	ctx, span := tracer.Start(ctx, "client:MaxPages")
	defer span.End()

	men, err = c.maxPagesOne(ctx, menFirstPage, p)
	if err != nil {
		return 0, 0, fmt.Errorf("men pages: %w", err)
	}
	women, err = c.maxPagesOne(ctx, womenFirstPage, p)
	if err != nil {
		return 0, 0, fmt.Errorf("women pages: %w", err)
	}
	return men, women, nil
}

func (c *Client) maxPagesOne(ctx context.Context, pageURL string, p EraProfile) (int, error) {
	doc, err := c.GetPage(ctx, pageURL)
	if err != nil {
		return 0, err
	}
	return maxPagesFromDoc(doc, p)
}

func maxPagesFromDoc(doc *goquery.Document, p EraProfile) (int, error) {
	var text string
	switch {
	case p.Pages.Sel != "":
		text = htmlutil.CleanText(doc.Find(p.Pages.Sel).First())
	case p.Pages.AnchorFromEnd > 0:
		anchors := doc.Find("a")
		idx := anchors.Length() - p.Pages.AnchorFromEnd
		if idx < 0 {
			return 0, fmt.Errorf("pagination control not found: %d anchors, offset %d", anchors.Length(), p.Pages.AnchorFromEnd)
		}
		text = htmlutil.CleanText(anchors.Eq(idx))
	default:
		return 0, fmt.Errorf("era %s/%s has no page layout", p.Marathon, p.Era)
	}

	pages, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("pagination control %q is not a page count: %w", text, err)
	}
	return pages, nil
}

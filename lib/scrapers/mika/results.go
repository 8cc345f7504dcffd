package mika

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"marathondata/lib/htmlutil"
	"marathondata/lib/records"
)

var (
	idpRegex = regexp.MustCompile(`idp=([^&]+)`)
	// the gender code sits right before the &num parameter in listing URLs
	genderRegex = regexp.MustCompile(`(.)&num`)
)

// GenderFromURL recovers the gender code ("M"/"W") from a result page URL,
// "" when the URL does not carry one.
func GenderFromURL(pageURL string) string {
	m := genderRegex.FindStringSubmatch(pageURL)
	if m == nil {
		return ""
	}
	return m[1]
}

func idpFromHref(href string) string {
	m := idpRegex.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseResults extracts every runner row from one results listing page.
// A missing field stays empty: the cleaner decides what to drop, the
// parser never rejects a page over one bad cell.
func ParseResults(ctx context.Context, doc *goquery.Document, pageURL string, p EraProfile) []records.RunnerRecord {
	ctx, span := tracer.Start(ctx, "ParseResults")
	defer span.End()

	gender := GenderFromURL(pageURL)
	if gender == "" {
		slog.WarnContext(ctx, "no gender code in page url", "url", pageURL)
	}

	layout := p.Results
	rows := doc.Find(layout.RowSel)

	var out []records.RunnerRecord
	rows.Each(func(i int, row *goquery.Selection) {
		if layout.SkipHeader && i == 0 {
			return
		}

		href := htmlutil.FirstHref(rowScope(row, layout.IdpAnchor))
		idp := idpFromHref(href)
		if idp == "" {
			// header cards and ad rows match the row selector too
			slog.DebugContext(ctx, "skipping row without runner link", "row", i)
			return
		}

		out = append(out, records.RunnerRecord{
			RunNo:  layout.RunNo.text(row),
			AgeCat: layout.AgeCat.text(row),
			Gender: gender,
			Half:   layout.Half.text(row),
			Finish: layout.Finish.text(row),
			Idp:    idp,
		})
	})
	return out
}

// rowScope narrows a row to the element holding the runner anchor.
func rowScope(row *goquery.Selection, ref FieldRef) *goquery.Selection {
	if ref.Sel != "" {
		return row.Find(ref.Sel).First()
	}
	if ref.Cell > 0 {
		return row.Find("td").Eq(ref.Cell - 1)
	}
	return row
}

package mika

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"

	"marathondata/lib/htmlutil"
	"marathondata/lib/records"
	"marathondata/lib/textutil"
)

// EstimatedSentinel is what an "estimated" split row collapses to. The
// cleaner treats it exactly like a genuinely empty cell.
const EstimatedSentinel = "-"

// canonicalLabels maps the normalized split-row headers the sites use to
// checkpoint keys. The Boston pages interleave extra mile splits whose
// labels match nothing here.
var canonicalLabels = map[string]string{
	"5k":         records.K5,
	"10k":        records.K10,
	"15k":        records.K15,
	"20k":        records.K20,
	"half":       records.KHalf,
	"half split": records.KHalf,
	"25k":        records.K25,
	"30k":        records.K30,
	"35k":        records.K35,
	"40k":        records.K40,
	"finish":     records.KFinish,
	"finish net": records.KFinish,
}

const labelSimilarityFloor = 0.92

// matchLabel resolves a split-row header to a checkpoint key. Exact lookup
// first; header variants with stray punctuation fall back to Jaro-Winkler
// similarity against the known labels. Returns "" for mile splits and
// other non-checkpoint rows.
func matchLabel(label string) string {
	norm := textutil.NormalizeLabel(label)
	if key, ok := canonicalLabels[norm]; ok {
		return key
	}

	best := ""
	var bestSim float64
	for candidate, key := range canonicalLabels {
		sim := matchr.JaroWinkler(norm, candidate, false)
		if sim > bestSim {
			bestSim = sim
			best = key
		}
	}
	if bestSim >= labelSimilarityFloor {
		return best
	}
	return ""
}

var ageCatRegex = regexp.MustCompile(`(\d{2}-\d{2})|(\d{2}.+)`)

// ParseSplits extracts one runner's split page. The runner id comes from
// the page URL itself so the record can always be joined back even when
// the page body is degenerate.
func ParseSplits(ctx context.Context, doc *goquery.Document, pageURL string, p EraProfile) records.SplitRecord {
	ctx, span := tracer.Start(ctx, "ParseSplits")
	defer span.End()

	layout := p.Splits
	rec := records.SplitRecord{Idp: idpFromHref(pageURL)}

	if layout.StateRows {
		stateRows := doc.Find("div.detail-box.box-state tr")
		rec.RaceState = htmlutil.CleanText(stateRows.Eq(0).Find("td"))
		rec.LastSplit = htmlutil.CleanText(stateRows.Eq(1).Find("td"))
	}
	if layout.AgeFromDetail {
		rec.AgeCat = ageCatFromDetail(doc)
	}
	if !layout.Supported() {
		slog.WarnContext(ctx, "era has no split layout", "marathon", p.Marathon, "era", p.Era)
		return rec
	}

	rows := doc.Find(layout.RowSel)
	next := 0
	rows.Each(func(i int, row *goquery.Selection) {
		if i < layout.FirstRow || next >= records.NumCheckpoints {
			return
		}

		idx := next
		if layout.FilterLabels {
			label := htmlutil.CleanText(row.Find("th").First())
			key := matchLabel(label)
			if key == "" {
				return // an interleaved mile split
			}
			idx = records.CheckpointIndex(key)
			if idx < 0 {
				return
			}
		}

		if layout.MarkEstimated && rowIsEstimated(row) {
			rec.Splits[idx] = records.SplitCell{
				Time:  EstimatedSentinel,
				Pace:  EstimatedSentinel,
				Speed: EstimatedSentinel,
			}
		} else {
			rec.Splits[idx] = records.SplitCell{
				Time:  htmlutil.CellText(row, layout.TimeCell),
				Pace:  htmlutil.CellText(row, layout.PaceCell),
				Speed: htmlutil.CellText(row, layout.SpeedCell),
			}
		}
		if idx >= next {
			next = idx + 1
		}
	})

	return rec
}

func rowIsEstimated(row *goquery.Selection) bool {
	class, _ := row.Attr("class")
	return strings.Contains(class, "estimated")
}

func ageCatFromDetail(doc *goquery.Document) string {
	// e.g. "Female 18-39" -> "18-39", "Female 80+" -> "80+"
	raw := htmlutil.CleanText(doc.Find("div.detail-box.box-general tr").Eq(2).Find("td"))
	if raw == "" {
		return ""
	}
	if m := ageCatRegex.FindString(raw); m != "" {
		return m
	}
	return raw
}

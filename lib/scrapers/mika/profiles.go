package mika

import (
	"fmt"
	"sort"

	"github.com/PuerkitoBio/goquery"

	"marathondata/lib/htmlutil"
)

// FieldRef points at one field inside a result row: either the n-th td of
// a table row or a CSS selector inside a list card. The zero value means
// the site does not expose the field on the listing page.
type FieldRef struct {
	Cell int
	Sel  string
}

func (f FieldRef) text(row *goquery.Selection) string {
	if f.Sel != "" {
		return htmlutil.CleanText(row.Find(f.Sel).First())
	}
	if f.Cell > 0 {
		return htmlutil.CellText(row, f.Cell)
	}
	return ""
}

// ResultLayout describes the results listing page of one marathon era.
type ResultLayout struct {
	// RowSel selects one runner per match; SkipHeader drops the leading
	// table-header row on the older table layout.
	RowSel     string
	SkipHeader bool

	RunNo  FieldRef
	AgeCat FieldRef
	Half   FieldRef
	Finish FieldRef
	// IdpAnchor selects the element containing the runner detail link; the
	// idp query parameter is pulled out of its href.
	IdpAnchor FieldRef
}

// SplitLayout describes a runner's split detail page.
type SplitLayout struct {
	// RowSel selects the split table rows; empty means the era has no
	// usable split pages.
	RowSel   string
	FirstRow int

	TimeCell  int
	PaceCell  int
	SpeedCell int

	// MarkEstimated coerces rows carrying an "estimated" class to the "-"
	// sentinel instead of reading their cells.
	MarkEstimated bool
	// FilterLabels keeps only rows whose header label matches a canonical
	// checkpoint; eras that interleave mile splits need this.
	FilterLabels bool
	// StateRows reads race state and last split from the state box.
	StateRows bool
	// AgeFromDetail extracts the age category from the general box on the
	// split page rather than the results listing.
	AgeFromDetail bool
	// MilesUnits flags pace as sec/mile and speed as mph; the cleaner
	// converts them to metric.
	MilesUnits bool
}

func (l SplitLayout) Supported() bool { return l.RowSel != "" }

// PageLayout describes where the pagination widget advertises the page
// count. Exactly one of the fields is set.
type PageLayout struct {
	// AnchorFromEnd counts anchors backwards from the end of the document;
	// the older table layout keeps the count second from last, newer ones
	// fifth from last.
	AnchorFromEnd int
	// Sel is a CSS selector for sites with an addressable paging control.
	Sel string
}

// EraProfile bundles every site-specific rule for one marathon/era.
type EraProfile struct {
	Marathon string
	Era      string
	Results  ResultLayout
	Splits   SplitLayout
	Pages    PageLayout
}

// The listing pages come in two generations: a plain result table (cells
// addressed by index) and a bootstrap list-group of cards (fields
// addressed by class). Split pages always carry a box-splits table, but
// cell positions, units and the estimated-row convention vary.
var profiles = map[string]EraProfile{
	"london14_18": {
		Marathon: "London",
		Era:      "2014-2018",
		Results: ResultLayout{
			RowSel:     "tr",
			SkipHeader: true,
			RunNo:      FieldRef{Cell: 6},
			AgeCat:     FieldRef{Cell: 7},
			Half:       FieldRef{Cell: 8},
			Finish:     FieldRef{Cell: 9},
			IdpAnchor:  FieldRef{Cell: 4},
		},
		Splits: SplitLayout{
			RowSel:    "div.detail-box.box-splits tr",
			FirstRow:  1,
			TimeCell:  2,
			PaceCell:  4,
			SpeedCell: 5,
			StateRows: true,
		},
		Pages: PageLayout{AnchorFromEnd: 2},
	},
	"london19_23": {
		Marathon: "London",
		Era:      "2019-2023",
		Results: ResultLayout{
			RowSel:    "li.list-group-item.row",
			RunNo:     FieldRef{Sel: "div.list-field.type-field"},
			AgeCat:    FieldRef{Sel: "div.list-field.type-age_class"},
			Half:      FieldRef{Sel: "div.split.list-field.type-time.hidden-xs"},
			Finish:    FieldRef{Sel: "div.split.list-field.type-time:not(.hidden-xs)"},
			IdpAnchor: FieldRef{Sel: "h4"},
		},
		Splits: SplitLayout{
			RowSel:    "div.detail-box.box-splits tr",
			FirstRow:  1,
			TimeCell:  2,
			PaceCell:  4,
			SpeedCell: 5,
			StateRows: true,
		},
		Pages: PageLayout{AnchorFromEnd: 5},
	},
	"hamburg13_17": {
		Marathon: "Hamburg",
		Era:      "2013-2017",
		Results: ResultLayout{
			RowSel:     "tr",
			SkipHeader: true,
			RunNo:      FieldRef{Cell: 3},
			AgeCat:     FieldRef{Cell: 6},
			Finish:     FieldRef{Cell: 8},
			IdpAnchor:  FieldRef{Cell: 4},
		},
		Splits: SplitLayout{
			RowSel:        "div.detail-box.box-splits tr",
			FirstRow:      1,
			TimeCell:      1,
			PaceCell:      3,
			SpeedCell:     4,
			MarkEstimated: true,
		},
		Pages: PageLayout{AnchorFromEnd: 5},
	},
	"boston14_17": {
		Marathon: "Boston",
		Era:      "2014-2017",
		Results: ResultLayout{
			RowSel:     "tr",
			SkipHeader: true,
			RunNo:      FieldRef{Cell: 5},
			Finish:     FieldRef{Cell: 7},
			IdpAnchor:  FieldRef{Cell: 4},
		},
		Splits: SplitLayout{
			RowSel:        "div.detail-box.box-splits tr",
			FirstRow:      1,
			TimeCell:      2,
			PaceCell:      4,
			SpeedCell:     5,
			MarkEstimated: true,
			StateRows:     true,
			AgeFromDetail: true,
			MilesUnits:    true,
		},
		Pages: PageLayout{AnchorFromEnd: 2},
	},
	"boston18_19": {
		Marathon: "Boston",
		Era:      "2018-2019",
		Results: ResultLayout{
			RowSel:    "li.list-group-item.row",
			RunNo:     FieldRef{Sel: "div.pull-left > div > div:nth-child(3)"},
			Finish:    FieldRef{Sel: "div.pull-right > div > div:nth-child(2)"},
			IdpAnchor: FieldRef{Sel: "h4"},
		},
		Splits: bostonModernSplits,
		Pages:  PageLayout{AnchorFromEnd: 5},
	},
	"boston21_23": {
		Marathon: "Boston",
		Era:      "2021-2023",
		Results: ResultLayout{
			RowSel:    "li.list-group-item.row",
			RunNo:     FieldRef{Sel: "div.pull-left > div > div:nth-child(2)"},
			Finish:    FieldRef{Sel: "div.pull-right > div > div:nth-child(2)"},
			IdpAnchor: FieldRef{Sel: "h4"},
		},
		Splits: bostonModernSplits,
		Pages:  PageLayout{AnchorFromEnd: 5},
	},
	"chicago14_22": {
		Marathon: "Chicago",
		Era:      "2014-2022",
		Results: ResultLayout{
			RowSel:    "li.list-group-item.row",
			RunNo:     FieldRef{Sel: "div.pull-left > div > div:nth-child(1)"},
			AgeCat:    FieldRef{Sel: "div.pull-left > div > div:nth-child(2)"},
			Finish:    FieldRef{Sel: "div.pull-right > div > div:nth-child(1)"},
			IdpAnchor: FieldRef{Sel: "h4"},
		},
		// the Chicago split pages moved behind a script-rendered widget,
		// no server-side rows to scrape
		Splits: SplitLayout{},
		Pages:  PageLayout{AnchorFromEnd: 5},
	},
	"houston18_19": {
		Marathon: "Houston",
		Era:      "2018-2019",
		Results: ResultLayout{
			RowSel:    "li.list-group-item.row",
			RunNo:     FieldRef{Sel: "div.list-field.type-field"},
			AgeCat:    FieldRef{Sel: "div.list-field.type-age_class"},
			Finish:    FieldRef{Sel: "div.split.list-field.type-time"},
			IdpAnchor: FieldRef{Sel: "h4"},
		},
		Splits: SplitLayout{
			RowSel:        "div.detail-box.box-splits tr",
			FirstRow:      1,
			TimeCell:      2,
			PaceCell:      4,
			SpeedCell:     5,
			MarkEstimated: true,
		},
		Pages: PageLayout{AnchorFromEnd: 5},
	},
	"stockholm21_22": {
		Marathon: "Stockholm",
		Era:      "2021-2022",
		Results: ResultLayout{
			RowSel:    "li.list-group-item.row",
			RunNo:     FieldRef{Sel: "div.list-field.type-field"},
			Finish:    FieldRef{Sel: "div.right.list-field.type-time"},
			IdpAnchor: FieldRef{Sel: "h4"},
		},
		Splits: SplitLayout{},
		Pages:  PageLayout{AnchorFromEnd: 5},
	},
}

var bostonModernSplits = SplitLayout{
	RowSel:        "div.detail-box.box-splits tr",
	FirstRow:      1,
	TimeCell:      2,
	PaceCell:      4,
	SpeedCell:     5,
	MarkEstimated: true,
	FilterLabels:  true,
	StateRows:     true,
	AgeFromDetail: true,
	MilesUnits:    true,
}

// Profile looks up an era profile by its registry name, e.g. "london19_23".
func Profile(name string) (EraProfile, error) {
	p, ok := profiles[name]
	if !ok {
		return EraProfile{}, fmt.Errorf("unknown era profile %q (known: %v)", name, ProfileNames())
	}
	return p, nil
}

// ProfileNames lists the registered era profiles in stable order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

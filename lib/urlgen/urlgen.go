// Package urlgen renders the paginated result and split page URLs of a
// marathon year from the operator-supplied templates. It is pure string
// work, the fetch layer decides what to do with the output.
package urlgen

import (
	"errors"
	"fmt"
)

// ErrPageCount is returned when the page-count slice does not hold exactly
// two entries (men first, then women).
var ErrPageCount = errors.New("pages must contain exactly 2 elements: men max page and women max page")

// Genders holds the gender codes substituted into result templates, men
// first. The timing sites use single letters.
var Genders = [2]string{"M", "W"}

// ResultURLs is the per-gender partition produced by PrepareResultURLs.
type ResultURLs struct {
	Men   []string
	Women []string
}

// Flat returns all URLs in one slice, every men page before every women
// page.
func (r ResultURLs) Flat() []string {
	out := make([]string, 0, len(r.Men)+len(r.Women))
	out = append(out, r.Men...)
	out = append(out, r.Women...)
	return out
}

// PrepareResultURLs renders every (gender, page) result URL for one
// marathon year. template carries fmt verbs for, in order: year, page,
// gender code and page size (zero padding of the page number therefore
// lives in the template itself, e.g. %02d). pages holds the max page per
// gender, men first; a slice of any other length fails with ErrPageCount.
func PrepareResultURLs(template, year string, pages []int, numResults int) (ResultURLs, error) {
	if len(pages) != 2 {
		return ResultURLs{}, ErrPageCount
	}
	var out ResultURLs
	for page := 1; page <= pages[0]; page++ {
		out.Men = append(out.Men, fmt.Sprintf(template, year, page, Genders[0], numResults))
	}
	for page := 1; page <= pages[1]; page++ {
		out.Women = append(out.Women, fmt.Sprintf(template, year, page, Genders[1], numResults))
	}
	return out, nil
}

// PrepareSplitURLs renders one split page URL per runner id. template
// carries fmt verbs for year and idp, in order.
func PrepareSplitURLs(template, year string, idps []string) []string {
	out := make([]string, 0, len(idps))
	for _, idp := range idps {
		out = append(out, fmt.Sprintf(template, year, idp))
	}
	return out
}

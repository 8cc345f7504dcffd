package cleaner

import (
	"regexp"
	"strconv"

	"marathondata/lib/records"
)

// bucketForAge collapses an adult age into the canonical category set.
// Everything under 40 shares one bucket, the sources have no junior field.
func bucketForAge(age int) string {
	switch {
	case age < 40:
		return "18-39"
	case age < 45:
		return "40-44"
	case age < 50:
		return "45-49"
	case age < 55:
		return "50-54"
	case age < 60:
		return "55-59"
	case age < 65:
		return "60-64"
	case age < 70:
		return "65-69"
	default:
		return "70+"
	}
}

var leadingAgeRegex = regexp.MustCompile(`(\d{2,4})`)

// CanonicalAgeCat maps one raw source category to a canonical bucket
// according to the marathon's rule. An unmappable value comes back as ""
// and the validation step flags the row.
//
// The mapping is total over the canonical set itself and idempotent:
// feeding a canonical bucket back in returns the same bucket.
func CanonicalAgeCat(raw string, cfg Config, raceYear int) string {
	if raw == "" {
		return ""
	}
	if mapped, ok := cfg.AgeOverrides[raw]; ok {
		return mapped
	}
	// canonical values pass through untouched, which is what makes the
	// mapping idempotent
	if records.IsCanonicalAgeCat(raw) {
		return raw
	}

	m := leadingAgeRegex.FindString(raw)
	if m == "" {
		return ""
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return ""
	}

	switch cfg.AgeRule {
	case AgeFromYearOfBirth:
		if n < 1900 || raceYear <= n {
			return ""
		}
		return bucketForAge(raceYear - n)
	default:
		// range-shaped labels: "45-49", "70+", "M45", "80+"
		if n < 18 || n > 120 {
			return ""
		}
		return bucketForAge(n)
	}
}

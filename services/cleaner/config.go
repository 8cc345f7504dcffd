package cleaner

import (
	"fmt"
	"sort"

	"marathondata/lib/records"
)

// AgeRuleKind selects how raw age categories collapse into the canonical
// buckets.
type AgeRuleKind int

const (
	// AgeFromRange reads the lower bound out of range-shaped categories
	// like "45-49", "70+" or "M45" and buckets on it.
	AgeFromRange AgeRuleKind = iota
	// AgeFromYearOfBirth treats the raw category as a year of birth and
	// buckets on age at race time (Hamburg).
	AgeFromYearOfBirth
)

// Config is the per-marathon parameterization of the shared cleaning
// pipeline.
type Config struct {
	Marathon string

	// MilesUnits converts sec/mile paces and mph speeds to metric in step 8.
	MilesUnits bool

	// StrictTriples drops rows where a split has a time but no pace or
	// speed; such rows are partial captures the imputer cannot trust.
	StrictTriples bool

	// DropColumns names canonical columns blanked before output (step 1).
	DropColumns []string

	// AgeRule and Overrides drive step 9. Overrides wins over the rule for
	// odd labels ("U20", "AD", ...).
	AgeRule      AgeRuleKind
	AgeOverrides map[string]string

	// NotStartedStates lists the source race-state strings that mean the
	// runner never crossed the start line.
	NotStartedStates []string
}

// configs is the strategy table: one entry per marathon, no per-marathon
// code.
var configs = map[string]Config{
	"London": {
		Marathon:         "London",
		NotStartedStates: []string{records.StateNotStarted, "DNS"},
		AgeOverrides:     map[string]string{"U20": "18-39"},
	},
	"Hamburg": {
		Marathon: "Hamburg",
		AgeRule:  AgeFromYearOfBirth,
	},
	"Houston": {
		Marathon:      "Houston",
		StrictTriples: true,
	},
	"Boston": {
		Marathon:         "Boston",
		MilesUnits:       true,
		NotStartedStates: []string{records.StateNotStarted, "DNS"},
	},
	"Chicago": {
		Marathon:    "Chicago",
		DropColumns: []string{"run_no"},
	},
	"Stockholm": {
		Marathon: "Stockholm",
	},
}

// ConfigFor returns the cleaning config of a marathon.
func ConfigFor(marathon string) (Config, error) {
	cfg, ok := configs[marathon]
	if !ok {
		return Config{}, fmt.Errorf("no cleaner config for marathon %q (known: %v)", marathon, Marathons())
	}
	return cfg, nil
}

// Marathons lists the configured marathons in stable order.
func Marathons() []string {
	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

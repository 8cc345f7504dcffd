package cleaner

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Report collects per-step drop counts for one marathon-year run. It
// replaces ad-hoc printing: callers log it, render it, or assert on it in
// tests.
type Report struct {
	Marathon string
	Year     int
	TotalIn  int
	TotalOut int
	Steps    []StepCount
}

type StepCount struct {
	Step    string
	Dropped int
}

func (r *Report) record(step string, dropped int) {
	r.Steps = append(r.Steps, StepCount{Step: step, Dropped: dropped})
}

// Dropped sums the rows removed across all steps.
func (r Report) Dropped() int {
	total := 0
	for _, s := range r.Steps {
		total += s.Dropped
	}
	return total
}

// Render writes the report as a text table.
func (r Report) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("%s %d", r.Marathon, r.Year)
	t.AppendHeader(table.Row{"step", "rows dropped"})
	for _, s := range r.Steps {
		t.AppendRow(table.Row{s.Step, s.Dropped})
	}
	t.AppendFooter(table.Row{"kept", r.TotalOut})
	t.Render()
}

package reconcile

// PassReport summarises one observe/compare/move round.
type PassReport struct {
	Pass      int
	Observed  int
	Matched   int
	Unmatched int
	Checked   int
	Failed    int
	Moves     []MoveRequest
}

// Report collects every pass of a run.
type Report struct {
	Passes []PassReport
}

// Moves returns every move issued (or planned, in a dry run) across passes.
func (r Report) Moves() []MoveRequest {
	var out []MoveRequest
	for _, p := range r.Passes {
		out = append(out, p.Moves...)
	}
	return out
}

// Failures counts actuation failures across passes.
func (r Report) Failures() int {
	n := 0
	for _, p := range r.Passes {
		n += p.Failed
	}
	return n
}

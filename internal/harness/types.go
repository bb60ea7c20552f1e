package harness

// TraceEvent records one executed step and the view that followed it.
type TraceEvent struct {
	Step     int      `json:"step"`
	Action   string   `json:"action"`
	Target   string   `json:"target,omitempty"`
	Spec     string   `json:"spec,omitempty"`
	Found    *bool    `json:"found,omitempty"`
	Favorite *bool    `json:"favorite,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	View     []string `json:"view"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation matched.
	Pass bool `json:"pass"`

	// Trace holds one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(err error) {
	r.Pass = false
	r.Errors = append(r.Errors, err.Error())
}

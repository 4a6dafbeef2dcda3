package harness

import "strings"

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true if every expectation held.
	Pass bool `json:"pass"`

	// Trace is the line-per-event log of the run: each step, every emitted
	// view, busy transitions and settled operations, in order.
	Trace []string `json:"trace"`

	// Errors holds failed expectations.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result with an empty trace.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []string{},
		Errors: []string{},
	}
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) addTrace(line string) {
	r.Trace = append(r.Trace, line)
}

// TraceText renders the trace as newline-terminated lines.
func (r *Result) TraceText() string {
	if len(r.Trace) == 0 {
		return ""
	}
	return strings.Join(r.Trace, "\n") + "\n"
}

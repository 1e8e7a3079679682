package harness

// TraceEvent records the outcome of one check.
type TraceEvent struct {
	Seq   int64  `json:"seq"`
	State string `json:"state"`
	Check string `json:"check"` // "label done", "formula below", ...
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"` // Error code when evaluation failed
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every check matched.
	Pass bool `json:"pass"`

	// Trace holds one event per check, in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains mismatch messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// CacheHits and CacheMisses total the evaluation cache counters over
	// all states.
	CacheHits   int `json:"cache_hits"`
	CacheMisses int `json:"cache_misses"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event with the next sequence number.
func (r *Result) AddTrace(state, check, value, code string) {
	r.Trace = append(r.Trace, TraceEvent{
		Seq:   int64(len(r.Trace) + 1),
		State: state,
		Check: check,
		Value: value,
		Error: code,
	})
}

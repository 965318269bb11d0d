package harness

// ErrorInvalidTerm is the case error code for a parameter that did not
// convert to its configured type. Builder failures use their own codes.
const ErrorInvalidTerm = "INVALID_TERM"

// CaseResult is the observed outcome of one case.
type CaseResult struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`

	// SQL and Args are the compiled query. Empty when the build failed.
	SQL  string `json:"sql,omitempty"`
	Args []any  `json:"args,omitempty"`

	// IDs are the selected record ids in id order.
	IDs []string `json:"ids"`

	// Error is the build error code, if the build failed.
	Error string `json:"error,omitempty"`

	// Message is the full build error message.
	Message string `json:"message,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every case met its expectation.
	Pass bool `json:"pass"`

	// Cases holds the observed outcome of every case, in order.
	Cases []CaseResult `json:"cases"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

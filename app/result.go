package app

// Result is what every engine operation hands back to its caller. Errors is
// always non-nil; a non-empty list next to a success message means the batch
// completed with warnings, which is distinct from a failed batch. The two
// fields are never conflated.
type Result struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func newResult() *Result {
	return &Result{Errors: []string{}}
}

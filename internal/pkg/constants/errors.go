package constants

import "net/http"

// CodedError is an error carrying an HTTP-shaped status code. Call sites wrap
// these with fmt.Errorf("...: %w", err); the code is recovered by walking
// errors.Unwrap.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrNotFound     = NewCodedError(http.StatusNotFound, "not found")
	ErrValidation   = NewCodedError(http.StatusBadRequest, "validation failed")
	ErrUnauthorized = NewCodedError(http.StatusUnauthorized, "unauthorized")

	// ErrMissingBomItemRef means the grouped shopping-list data has no BOM
	// item reference for a component/module pair that is being edited. This
	// is a client-side consistency bug, not a user error.
	ErrMissingBomItemRef = NewCodedError(http.StatusConflict, "missing bom item reference for component/module pair")

	// ErrSubmitInFlight rejects a second submit for a row that is already
	// submitting.
	ErrSubmitInFlight = NewCodedError(http.StatusConflict, "submit already in flight")
)

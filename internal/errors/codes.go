package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeInvalidFormula     Code = "INVALID_FORMULA"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Recoverable reports whether callers may downgrade an error with this code
// to a user-visible warning and carry on.
func (c Code) Recoverable() bool {
	switch c {
	case CodeInvalidFormula, CodeNotFound:
		return true
	default:
		return false
	}
}

package funnel

import "fmt"

// ValidationError rejects a transition locally: state is unchanged and the
// user is re-prompted. Title and Message are safe to display as-is.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

func validationError(title, message string) *ValidationError {
	return &ValidationError{Title: title, Message: message}
}

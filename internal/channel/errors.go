package channel

import "errors"

// ValidationError rejects a posted body. Field is empty when the body itself
// is missing or not a JSON object.
type ValidationError struct {
	Field   string
	Invalid bool
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "No message"
	}
	if e.Invalid {
		return "Invalid " + e.Field
	}
	return "No " + e.Field
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

package internal

import "fmt"

// APIError kinds.
const (
	KindValueInvalid        = "value:invalid"
	KindValueNotFound       = "value:notfound"
	KindPermissionForbidden = "permission:forbidden"
)

// APIError is a domain error returned by endpoint functions. The adapter
// turns it into the payload {"error": kind, "data": field, "message": msg}.
type APIError struct {
	Kind    string
	Field   string
	Message string
}

func (e *APIError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
}

// Payload returns the response mapping for the error.
func (e *APIError) Payload() map[string]any {
	return map[string]any{
		"error":   e.Kind,
		"data":    e.Field,
		"message": e.Message,
	}
}

// NewAPIError creates an APIError of an arbitrary kind.
func NewAPIError(kind, field, message string) *APIError {
	return &APIError{Kind: kind, Field: field, Message: message}
}

// APIValueError reports invalid or missing input for field.
func APIValueError(field, message string) *APIError {
	return NewAPIError(KindValueInvalid, field, message)
}

// APIResourceNotFoundError reports that the resource named by field does not exist.
func APIResourceNotFoundError(field, message string) *APIError {
	return NewAPIError(KindValueNotFound, field, message)
}

// APIPermissionError reports that the caller may not perform the operation.
func APIPermissionError(message string) *APIError {
	return NewAPIError(KindPermissionForbidden, "permission", message)
}

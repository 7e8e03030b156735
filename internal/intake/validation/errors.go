package validation

import "strings"

// FieldError names a rejected field and why.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// FieldErrors is the ordered set of violations for one submission.
type FieldErrors []FieldError

func (e *FieldErrors) add(field, reason string) {
	*e = append(*e, FieldError{Field: field, Reason: reason})
}

// Error renders all violations, e.g. "phoneNumber: is required; age: ...".
func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Reason
	}
	return strings.Join(parts, "; ")
}

// Fields lists the rejected field names in order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, len(e))
	for i, fe := range e {
		fields[i] = fe.Field
	}
	return fields
}

// Has reports whether field was rejected.
func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

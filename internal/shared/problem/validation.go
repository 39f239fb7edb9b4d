package problem

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldViolation is one rejected field inside a validation-failed problem.
type FieldViolation struct {
	Field         string      `json:"field"`
	RejectedValue interface{} `json:"rejectedValue,omitempty"`
	Message       string      `json:"message"`
	Code          string      `json:"code,omitempty"`
}

// ViolationsFromOzzo flattens an ozzo validation.Errors map into the wire
// shape, pairing each field with the value the caller supplied. Output is
// sorted by field name so bodies are stable for clients and tests.
func ViolationsFromOzzo(errs validation.Errors, rejected map[string]interface{}) []FieldViolation {
	violations := make([]FieldViolation, 0, len(errs))
	for field, err := range errs {
		v := FieldViolation{
			Field:         field,
			RejectedValue: rejected[field],
			Message:       err.Error(),
		}
		if eo, ok := err.(validation.ErrorObject); ok {
			v.Code = eo.Code()
		}
		violations = append(violations, v)
	}
	sort.Slice(violations, func(i, j int) bool {
		return violations[i].Field < violations[j].Field
	})
	return violations
}

// ValidationFailed renders a multi-field constraint failure.
func ValidationFailed(c *gin.Context, violations []FieldViolation) {
	p := New("validation-failed", "Validation Failed", http.StatusBadRequest,
		"Validation failed").
		With("errors", violations)
	Write(c, p)
}

// DomainValidation renders a single-field business rule violation
// (one that is not a request-shape constraint).
func DomainValidation(c *gin.Context, field string, rejected interface{}, detail string) {
	p := New("validation-error", "Validation Error", http.StatusBadRequest, detail).
		With("field", field).
		With("rejectedValue", rejected)
	Write(c, p)
}

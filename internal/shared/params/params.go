// Package params parses path and query parameters explicitly, so a bad or
// missing value maps to the right problem body instead of a framework
// binding error. Each helper writes the problem response itself and reports
// ok=false; handlers just return.
package params

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shopping-backend/internal/shared/problem"
)

// Int64Path parses a numeric path parameter.
func Int64Path(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		problem.TypeMismatch(c, name, raw, "integer")
		return 0, false
	}
	return id, true
}

// RequiredDecimalQuery parses a required decimal query parameter.
// Absence is a missing-parameter problem, not a type mismatch.
func RequiredDecimalQuery(c *gin.Context, name string) (decimal.Decimal, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		problem.MissingParameter(c, name, "decimal")
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		problem.TypeMismatch(c, name, raw, "decimal")
		return decimal.Zero, false
	}
	return d, true
}

// RequiredStringQuery fetches a required string query parameter.
func RequiredStringQuery(c *gin.Context, name string) (string, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		problem.MissingParameter(c, name, "string")
		return "", false
	}
	return raw, true
}

// IntQuery parses an optional integer query parameter with a default.
func IntQuery(c *gin.Context, name string, def int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		problem.TypeMismatch(c, name, raw, "integer")
		return 0, false
	}
	return n, true
}

// DecimalQuery parses an optional decimal query parameter with a default.
func DecimalQuery(c *gin.Context, name string, def decimal.Decimal) (decimal.Decimal, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return def, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		problem.TypeMismatch(c, name, raw, "decimal")
		return decimal.Zero, false
	}
	return d, true
}

// Package problem renders every error reachable from a handler as an
// RFC 7807 problem-detail body. Clients dispatch on the stable "type" URI,
// never on message text.
package problem

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TypeBase prefixes every problem type URI.
const TypeBase = "https://api.shopping-backend.dev/problems/"

// Details is a problem-detail body. Extensions are flattened into the
// top-level JSON object alongside the standard members.
type Details struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Timestamp  time.Time
	Extensions map[string]interface{}
}

// New builds a problem for the given type slug. The slug is appended to
// TypeBase to form the full type URI.
func New(slug, title string, status int, detail string) *Details {
	return &Details{
		Type:   TypeBase + slug,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// With attaches an extension member and returns the problem for chaining.
func (p *Details) With(key string, value interface{}) *Details {
	if p.Extensions == nil {
		p.Extensions = make(map[string]interface{})
	}
	p.Extensions[key] = value
	return p
}

func (p *Details) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{
		"type":      p.Type,
		"title":     p.Title,
		"status":    p.Status,
		"instance":  p.Instance,
		"timestamp": p.Timestamp,
	}
	if p.Detail != "" {
		body["detail"] = p.Detail
	}
	for k, v := range p.Extensions {
		body[k] = v
	}
	return json.Marshal(body)
}

// Write stamps instance/timestamp from the request, renders the body with
// the problem+json content type, and aborts the handler chain.
func Write(c *gin.Context, p *Details) {
	p.Instance = c.Request.URL.Path
	p.Timestamp = time.Now()

	c.Header("Content-Type", "application/problem+json")
	c.AbortWithStatusJSON(p.Status, p)
}

// ===================================
// SHARED PROBLEM CONSTRUCTORS
// ===================================
// Domain-specific problems (product-not-found, insufficient-stock) are
// built where the domain errors live; the constructors here cover the
// failure modes every resource shares.

// MalformedRequest covers unparseable JSON bodies.
func MalformedRequest(c *gin.Context) {
	Write(c, New("malformed-request", "Malformed Request", http.StatusBadRequest,
		"Malformed JSON request"))
}

// TypeMismatch covers a path or query parameter that failed to parse.
func TypeMismatch(c *gin.Context, param, rejected, expectedType string) {
	p := New("type-mismatch", "Type Mismatch", http.StatusBadRequest,
		"Invalid value '"+rejected+"' for parameter '"+param+"'. Expected type: "+expectedType).
		With("parameter", param).
		With("rejectedValue", rejected).
		With("expectedType", expectedType)
	Write(c, p)
}

// MissingParameter covers a required query parameter that was not supplied.
func MissingParameter(c *gin.Context, param, expectedType string) {
	p := New("missing-parameter", "Missing Parameter", http.StatusBadRequest,
		"Required parameter '"+param+"' is missing").
		With("parameter", param).
		With("expectedType", expectedType)
	Write(c, p)
}

// RouteNotFound is wired as the router's NoRoute handler.
func RouteNotFound(c *gin.Context) {
	Write(c, New("resource-not-found", "Resource Not Found", http.StatusNotFound,
		"The requested resource was not found"))
}

// DataIntegrity covers storage constraint violations (duplicate key, FK)
// that no domain pre-check intercepted.
func DataIntegrity(c *gin.Context) {
	Write(c, New("data-integrity", "Data Integrity Violation", http.StatusConflict,
		"A record with this information already exists."))
}

// Internal is the catch-all. The cause is logged server side; nothing
// internal reaches the client.
func Internal(c *gin.Context) {
	Write(c, New("internal-error", "Internal Server Error", http.StatusInternalServerError,
		"An unexpected error occurred. Please try again later."))
}

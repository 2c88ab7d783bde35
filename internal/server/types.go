package server

import "github.com/agbru/seqcalc/pkg/models"

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// ParseError is a query parameter that is missing or malformed.
type ParseError struct {
	Param   string
	Message string
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return "invalid '" + e.Param + "' parameter: " + e.Message
}

// FamiliesResponse lists the registered sequence families.
type FamiliesResponse struct {
	Families []string `json:"families"`
}

// HealthResponse is the body of /health. Build is omitted unless the
// server was given WithBuildInfo.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp int64             `json:"timestamp"`
	Build     *models.BuildInfo `json:"build,omitempty"`
}

// SequenceResponse is the body of /sequence. Verify is set when the
// request asked for verification of the last listed index.
type SequenceResponse struct {
	models.SequenceResult
	Verify *models.VerifyResult `json:"verify,omitempty"`
}

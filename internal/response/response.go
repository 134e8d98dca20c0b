package response

import "time"

// Envelope is the uniform body shape returned by every endpoint.
type Envelope struct {
	Status    string      `json:"status"` // "success" or "error"
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Success builds a success envelope.
func Success(message string, data interface{}) Envelope {
	return Envelope{
		Status:    "success",
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Error builds an error envelope with optional detail lines.
func Error(message string, errs ...string) Envelope {
	return Envelope{
		Status:    "error",
		Message:   message,
		Errors:    errs,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

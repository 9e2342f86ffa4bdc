// Package models contains data types and constants for the cvischat client.
package models

import "time"

// Endpoint and model defaults for the generate API
const (
	DefaultEndpoint = "http://103.104.17.31:11434/api/generate"
	DefaultModel    = "cvisnet"
	DefaultTimeout  = 300 * time.Second
)

// FallbackReply is shown when the server answers without a response field.
const FallbackReply = "No response from AI."

// DefaultHeaders returns the headers sent with every generate request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

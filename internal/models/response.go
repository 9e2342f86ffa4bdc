package models

import "time"

// GenerateRequest is the JSON body posted to the generate endpoint
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Reply is the parsed result of a generate call
type Reply struct {
	Text     string
	Model    string        // model name echoed by the server, if any
	Fallback bool          // true when the server sent no response field
	Duration time.Duration // wall time of the request
}

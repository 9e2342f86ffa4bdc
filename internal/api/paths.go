package api

// GJSON paths into the generate response body.
const (
	PathResponse = "response"
	PathModel    = "model"
	PathError    = "error"
)

// maxErrorBody limits how much of a failed response is kept for diagnostics
const maxErrorBody = 4096

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/cvischat/internal/errors"
	"github.com/diogo/cvischat/internal/models"
)

// Generate posts prompt to the endpoint and waits for the full reply.
// A body without a response field yields models.FallbackReply, not an error.
func (c *GenerateClient) Generate(ctx context.Context, prompt string) (*models.Reply, error) {
	if prompt == "" {
		return nil, apierrors.ErrEmptyPrompt
	}

	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	payload, err := buildPayload(c.GetModel(), prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(ctx, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := "generate failed"
		if e := gjson.GetBytes(errorBody, PathError); e.Type == gjson.String && e.Str != "" {
			message = e.Str
		}
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, c.endpoint, message, string(errorBody))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransportError(ctx, err)
	}

	reply, err := parseResponse(body)
	if err != nil {
		return nil, err
	}
	reply.Duration = time.Since(start)

	c.logger.Debug().
		Str("endpoint", c.endpoint).
		Int("prompt_bytes", len(prompt)).
		Dur("duration", reply.Duration).
		Bool("fallback", reply.Fallback).
		Msg("generate completed")

	return reply, nil
}

// buildPayload creates the JSON body; streaming is always off
func buildPayload(model, prompt string) ([]byte, error) {
	return json.Marshal(models.GenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
}

// parseResponse extracts the reply from a generate response body
func parseResponse(body []byte) (*models.Reply, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response body is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return nil, apierrors.NewParseError("response body is not a JSON object", "")
	}

	reply := &models.Reply{
		Model: parsed.Get(PathModel).String(),
	}

	text := parsed.Get(PathResponse)
	if !text.Exists() || text.String() == "" {
		reply.Text = models.FallbackReply
		reply.Fallback = true
		return reply, nil
	}

	reply.Text = text.String()
	return reply, nil
}

// classifyTransportError maps a failed Do or body read onto the error taxonomy
func (c *GenerateClient) classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &apierrors.TimeoutError{Message: c.endpoint, Cause: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &apierrors.TimeoutError{Message: c.endpoint, Cause: err}
	}

	return apierrors.NewNetworkErrorWithEndpoint("generate", c.endpoint, err)
}

package chat

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/diogo/cvischat/internal/api"
	apierrors "github.com/diogo/cvischat/internal/errors"
)

// Exchanger runs a full submit, generate, complete cycle against a client
type Exchanger struct {
	Session *Session
	Client  api.GenerateClientInterface
	Logger  zerolog.Logger
}

// NewExchanger creates an Exchanger
func NewExchanger(session *Session, client api.GenerateClientInterface, logger zerolog.Logger) *Exchanger {
	return &Exchanger{Session: session, Client: client, Logger: logger}
}

// Send submits input and waits for the reply. Submission errors (empty input,
// busy) are returned before any network call. An inference failure is logged
// and recorded on the session; it is also returned so callers can report it.
func (e *Exchanger) Send(ctx context.Context, input string) (Exchange, error) {
	ex, err := e.Session.Submit(input)
	if err != nil {
		return ex, err
	}

	res := Run(ctx, e.Client, e.Logger, ex)
	e.Session.Complete(ex.ID, res)
	return ex, res.Err
}

// Run performs the network half of an exchange and logs its outcome
func Run(ctx context.Context, client api.GenerateClientInterface, logger zerolog.Logger, ex Exchange) Result {
	logger.Info().
		Str("exchange", ex.ID).
		Int("messages", ex.Messages).
		Int("prompt_bytes", len(ex.Prompt)).
		Msg("submitting prompt")

	start := time.Now()
	reply, err := client.Generate(ctx, ex.Prompt)
	if err != nil {
		logger.Error().
			Err(err).
			Str("exchange", ex.ID).
			Int("status", apierrors.GetHTTPStatus(err)).
			Dur("duration", time.Since(start)).
			Msg("error sending message")
		return Result{Err: err}
	}

	logger.Info().
		Str("exchange", ex.ID).
		Dur("duration", time.Since(start)).
		Bool("fallback", reply.Fallback).
		Msg("reply received")
	return Result{Reply: reply}
}

package chat

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diogo/cvischat/internal/api"
	apierrors "github.com/diogo/cvischat/internal/errors"
	"github.com/diogo/cvischat/internal/models"
)

func TestExchanger_Success(t *testing.T) {
	mock := &api.MockGenerateClient{Reply: &models.Reply{Text: "Hello!"}}
	s := newTestSession()
	e := NewExchanger(s, mock, zerolog.Nop())

	if _, err := e.Send(context.Background(), "Hi"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[1].Role != models.RoleSystem || msgs[1].Content != "Hello!" {
		t.Errorf("reply = %+v", msgs[1])
	}
	if s.Loading() {
		t.Error("loading should be cleared")
	}
	if mock.LastPrompt() != "Role: User\nContent: \"Hi\"\n" {
		t.Errorf("prompt = %q", mock.LastPrompt())
	}
}

func TestExchanger_EmptyInputSkipsNetwork(t *testing.T) {
	mock := &api.MockGenerateClient{Reply: &models.Reply{Text: "x"}}
	e := NewExchanger(newTestSession(), mock, zerolog.Nop())

	if _, err := e.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Send() error = %v, want ErrEmptyInput", err)
	}
	if mock.Calls() != 0 {
		t.Errorf("Generate should not be called, got %d", mock.Calls())
	}
}

func TestExchanger_FailureIsLoggedAndSwallowedFromConversation(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	failure := apierrors.NewNetworkError("generate", errors.New("connection refused"))
	mock := &api.MockGenerateClient{Err: failure}
	s := newTestSession()
	e := NewExchanger(s, mock, logger)

	_, err := e.Send(context.Background(), "Hi")
	if !errors.Is(err, failure) {
		t.Errorf("Send() error = %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("no reply should be appended, Len() = %d", s.Len())
	}
	if s.Loading() {
		t.Error("loading should be cleared after failure")
	}
	if !strings.Contains(buf.String(), "error sending message") {
		t.Errorf("failure was not logged: %q", buf.String())
	}
}

func TestExchanger_FallbackReply(t *testing.T) {
	mock := &api.MockGenerateClient{Reply: &models.Reply{Text: models.FallbackReply, Fallback: true}}
	s := newTestSession()
	e := NewExchanger(s, mock, zerolog.Nop())

	if _, err := e.Send(context.Background(), "Hi"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	reply, _ := s.LastReply()
	if reply.Content != "No response from AI." {
		t.Errorf("reply = %q", reply.Content)
	}
}

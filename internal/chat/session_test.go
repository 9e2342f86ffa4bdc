package chat

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/diogo/cvischat/internal/models"
	"github.com/diogo/cvischat/internal/prompt"
)

func newTestSession() *Session {
	s := NewSession(nil)
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("ex-%d", n)
	}
	return s
}

func TestSession_SubmitAppendsUserMessage(t *testing.T) {
	s := newTestSession()

	ex, err := s.Submit("Hello")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleUser || msgs[0].Content != "Hello" {
		t.Errorf("message = %+v", msgs[0])
	}
	if ex.ID == "" {
		t.Error("exchange ID should be set")
	}
	if ex.Messages != 1 {
		t.Errorf("Exchange.Messages = %d, want 1", ex.Messages)
	}
	if ex.Prompt != "Role: User\nContent: \"Hello\"\n" {
		t.Errorf("Prompt = %q", ex.Prompt)
	}
}

func TestSession_SubmitEmptyIsNoop(t *testing.T) {
	inputs := []string{"", " ", "\n", "\t  \n "}

	for _, in := range inputs {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			s := newTestSession()

			_, err := s.Submit(in)
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("Submit() error = %v, want ErrEmptyInput", err)
			}
			if s.Len() != 0 {
				t.Errorf("conversation should stay empty, got %d", s.Len())
			}
			if s.Loading() {
				t.Error("loading should stay false")
			}
		})
	}
}

func TestSession_LoadingLifecycle(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		wantLen  int
		wantErr  bool
		wantLast string
	}{
		{
			name:     "success",
			result:   Result{Reply: &models.Reply{Text: "Hello!"}},
			wantLen:  2,
			wantLast: "Hello!",
		},
		{
			name:     "fallback reply",
			result:   Result{Reply: &models.Reply{Text: models.FallbackReply, Fallback: true}},
			wantLen:  2,
			wantLast: models.FallbackReply,
		},
		{
			name:     "nil reply",
			result:   Result{},
			wantLen:  2,
			wantLast: models.FallbackReply,
		},
		{
			name:    "failure",
			result:  Result{Err: errors.New("connection refused")},
			wantLen: 1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()

			ex, err := s.Submit("Hi")
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if !s.Loading() {
				t.Fatal("loading should be true right after submit")
			}
			if s.State() != StateAwaitingResponse {
				t.Errorf("State() = %v, want awaiting-response", s.State())
			}

			if !s.Complete(ex.ID, tt.result) {
				t.Fatal("Complete() should apply the result")
			}

			if s.Loading() {
				t.Error("loading should be false after settle")
			}
			if s.State() != StateIdle {
				t.Errorf("State() = %v, want idle", s.State())
			}
			if s.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.wantLen)
			}
			if tt.wantErr {
				if s.LastError() == nil {
					t.Error("LastError() should be set after failure")
				}
				return
			}
			last := s.Messages()[s.Len()-1]
			if last.Role != models.RoleSystem || last.Content != tt.wantLast {
				t.Errorf("last message = %+v", last)
			}
		})
	}
}

func TestSession_BusyRejectsSecondSubmit(t *testing.T) {
	s := newTestSession()

	if _, err := s.Submit("first"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if _, err := s.Submit("second"); !errors.Is(err, ErrBusy) {
		t.Errorf("second Submit() error = %v, want ErrBusy", err)
	}
	if s.Len() != 1 {
		t.Errorf("busy submit must not append, Len() = %d", s.Len())
	}
}

func TestSession_StaleCompletionIgnored(t *testing.T) {
	s := newTestSession()
	ex, _ := s.Submit("Hi")

	if s.Complete("not-"+ex.ID, Result{Reply: &models.Reply{Text: "wrong"}}) {
		t.Error("Complete() with unknown id should be ignored")
	}
	if !s.Loading() {
		t.Error("unknown completion must not clear loading")
	}

	s.Complete(ex.ID, Result{Reply: &models.Reply{Text: "right"}})
	if s.Complete(ex.ID, Result{Reply: &models.Reply{Text: "again"}}) {
		t.Error("second Complete() for the same id should be ignored")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSession_CompleteAfterClose(t *testing.T) {
	s := newTestSession()
	ex, _ := s.Submit("Hi")
	s.Close()

	if s.Complete(ex.ID, Result{Reply: &models.Reply{Text: "late"}}) {
		t.Error("Complete() after Close() should be ignored")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if _, err := s.Submit("again"); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() after Close() error = %v, want ErrClosed", err)
	}
}

func TestSession_NthPromptHasNBlocks(t *testing.T) {
	s := newTestSession()
	inputs := []string{"first", "second", "third", "fourth"}

	for i, in := range inputs {
		ex, err := s.Submit(in)
		if err != nil {
			t.Fatalf("Submit(%q) error = %v", in, err)
		}

		// Each prior turn contributed a user and a system message.
		wantBlocks := 2*i + 1
		if got := strings.Count(ex.Prompt, "Role: "); got != wantBlocks {
			t.Errorf("submission %d: prompt has %d blocks, want %d", i+1, got, wantBlocks)
		}
		if !strings.HasSuffix(ex.Prompt, fmt.Sprintf("Role: User\nContent: %q\n", in)) {
			t.Errorf("submission %d: prompt should end with the new message: %q", i+1, ex.Prompt)
		}

		s.Complete(ex.ID, Result{Reply: &models.Reply{Text: "reply to " + in}})
	}

	msgs := s.Messages()
	for i, msg := range msgs {
		wantRole := models.RoleUser
		if i%2 == 1 {
			wantRole = models.RoleSystem
		}
		if msg.Role != wantRole {
			t.Errorf("message %d role = %s, want %s", i, msg.Role, wantRole)
		}
	}
}

func TestSession_FailedTurnStaysInHistory(t *testing.T) {
	s := newTestSession()

	ex, _ := s.Submit("lost")
	s.Complete(ex.ID, Result{Err: errors.New("boom")})

	ex, _ = s.Submit("retry")
	if got := strings.Count(ex.Prompt, "Role: User"); got != 2 {
		t.Errorf("prompt should carry both user turns, got %d: %q", got, ex.Prompt)
	}
	if s.LastError() != nil {
		t.Error("a new submit should clear LastError")
	}
}

func TestSession_WindowBoundsPrompt(t *testing.T) {
	s := NewSession(prompt.LastN(2))

	for _, in := range []string{"a", "b", "c"} {
		ex, err := s.Submit(in)
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		s.Complete(ex.ID, Result{Reply: &models.Reply{Text: "ok"}})
	}

	ex, _ := s.Submit("d")
	if got := strings.Count(ex.Prompt, "Role: "); got != 2 {
		t.Errorf("prompt has %d blocks, want 2", got)
	}
	if s.Len() != 7 {
		t.Errorf("the window must not trim the conversation, Len() = %d", s.Len())
	}
}

func TestSession_ClearError(t *testing.T) {
	s := newTestSession()
	ex, _ := s.Submit("x")
	s.Complete(ex.ID, Result{Err: errors.New("boom")})

	s.ClearError()
	if s.LastError() != nil {
		t.Error("ClearError() should reset LastError")
	}
}

func TestSession_LastReply(t *testing.T) {
	s := newTestSession()
	if _, ok := s.LastReply(); ok {
		t.Error("empty session has no reply")
	}

	ex, _ := s.Submit("x")
	s.Complete(ex.ID, Result{Reply: &models.Reply{Text: "answer"}})

	reply, ok := s.LastReply()
	if !ok || reply.Content != "answer" {
		t.Errorf("LastReply() = %+v, %v", reply, ok)
	}
}

func TestState_String(t *testing.T) {
	if StateIdle.String() != "idle" || StateAwaitingResponse.String() != "awaiting-response" {
		t.Error("unexpected state names")
	}
	if State(42).String() != "unknown" {
		t.Error("unknown state should stringify as unknown")
	}
}

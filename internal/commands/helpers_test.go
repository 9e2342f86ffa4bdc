package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diogo/cvischat/internal/api"
	"github.com/diogo/cvischat/internal/chat"
	"github.com/diogo/cvischat/internal/config"
	"github.com/diogo/cvischat/internal/render"
)

// testEnv wires commands to a mock client and in-memory streams
type testEnv struct {
	deps    *Dependencies
	client  *api.MockGenerateClient
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	gotCfg  config.Config
	copied  string
	chatRan bool
	session *chat.Session
}

func newTestEnv(t *testing.T, client *api.MockGenerateClient) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{config.EnvEndpoint, config.EnvModel, config.EnvTimeout, config.EnvContextWindow, config.EnvLogLevel, render.EnvStyle} {
		t.Setenv(k, "")
	}

	env := &testEnv{
		client: client,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	env.deps = &Dependencies{
		NewClient: func(cfg config.Config, logger zerolog.Logger) (api.GenerateClientInterface, error) {
			env.gotCfg = cfg
			return client, nil
		},
		RunChat: func(ctx context.Context, c api.GenerateClientInterface, s *chat.Session, logger zerolog.Logger, opts render.Options) error {
			env.chatRan = true
			env.session = s
			return nil
		},
		Stdin:      strings.NewReader(""),
		Stdout:     env.stdout,
		Stderr:     env.stderr,
		StdinPiped: func() bool { return false },
		IsTTY:      func() bool { return false },
		TermWidth:  func() int { return 80 },
		Clipboard: func(s string) error {
			env.copied = s
			return nil
		},
	}
	return env
}

func (e *testEnv) run(args ...string) error {
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	return cmd.Execute()
}

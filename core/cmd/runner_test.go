package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	coreconfig "github.com/m3rciful/chroniclebot/core/config"
	coretelegram "github.com/m3rciful/chroniclebot/core/telegram"
)

type carrier struct{ cfg *coreconfig.Config }

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

type fakeApp struct {
	closed bool
}

func (a *fakeApp) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{Config: &coreconfig.Config{}}, nil
}

func (a *fakeApp) Close() error {
	a.closed = true
	return nil
}

func TestRunWiresLifecycle(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("CHRONICLE_RUNNER_TEST=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", filepath.Join(dir, "custom.yaml"))
	t.Setenv("CHRONICLE_RUNNER_TEST", "")
	os.Unsetenv("CHRONICLE_RUNNER_TEST")

	var loadedPath string
	app := &fakeApp{}
	var hooks []string

	err := Run(Options{
		EnvFiles: []string{envFile, filepath.Join(dir, "missing.env")},
		LoadConfig: func(path string) (ConfigCarrier, error) {
			loadedPath = path
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return app, nil
		},
		ShutdownLogger: func() error { hooks = append(hooks, "logger"); return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			hooks = append(hooks, "run")
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if loadedPath != filepath.Join(dir, "custom.yaml") {
		t.Fatalf("config path = %q", loadedPath)
	}
	if got := os.Getenv("CHRONICLE_RUNNER_TEST"); got != "from-file" {
		t.Fatalf("env from file = %q", got)
	}
	if !app.closed {
		t.Fatal("app was not closed")
	}
	if len(hooks) != 2 || hooks[0] != "run" || hooks[1] != "logger" {
		t.Fatalf("hooks = %v", hooks)
	}
}

func TestRunBootstrapError(t *testing.T) {
	boom := errors.New("no token")
	err := Run(Options{
		LoadConfig: func(string) (ConfigCarrier, error) { return carrier{cfg: &coreconfig.Config{}}, nil },
		Bootstrap:  func(context.Context, ConfigCarrier) (TelegramApp, error) { return nil, boom },
		RunTelegram: func(context.Context, coretelegram.RunOptions) error {
			t.Fatal("bot must not start")
			return nil
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunRequiresHooks(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Fatal("expected error without LoadConfig")
	}
}

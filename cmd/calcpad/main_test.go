package main

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calcpad/calcpad/internal/calculator"
	"github.com/calcpad/calcpad/internal/server"
)

// execute runs the root command with a private config file and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flag variables keep their values between Execute calls
	configPath, logLevel, repeatEquals, plainOutput = "", "", "", false
	pressURL, pressReset, configForce = "", false, false

	if !containsFlag(args, "--config") {
		args = append(args, "--config", filepath.Join(t.TempDir(), "config.yaml"))
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"compact", []string{"eval", "--plain", "5+3="}, "8"},
		{"separate tokens", []string{"eval", "--plain", "1.5", "+", "2.5", "="}, "4"},
		{"aliases", []string{"eval", "--plain", "6", "x", "7", "enter"}, "42"},
		{"divide by zero", []string{"eval", "--plain", "7/0="}, "Inf"},
		{"percent", []string{"eval", "--plain", "200%"}, "2"},
		{"repeat flag", []string{"eval", "--plain", "--repeat-equals", "repeat", "5+3=="}, "11"},
		{"noop default", []string{"eval", "--plain", "5+3=="}, "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvalCommand_Styled(t *testing.T) {
	out, err := execute(t, "eval", "9", "+")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"EVALUATE", "Display", "9", "Pending", "+"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEvalCommand_Errors(t *testing.T) {
	_, err := execute(t, "eval", "5", "sqrt")
	if !errors.Is(err, calculator.ErrUnknownKey) {
		t.Errorf("Execute() error = %v, want ErrUnknownKey", err)
	}

	if _, err := execute(t, "eval", "--repeat-equals", "twice", "1="); err == nil {
		t.Error("Execute() with invalid --repeat-equals should fail")
	}

	if _, err := execute(t, "eval"); err == nil {
		t.Error("Execute() without keys should fail")
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calcpad", "config.yaml")

	out, err := execute(t, "config", "path", "--config", path)
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if got := strings.TrimSpace(out); got != path {
		t.Errorf("config path = %q, want %q", got, path)
	}

	if _, err := execute(t, "config", "init", "--plain", "--config", path); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, err := execute(t, "config", "init", "--config", path); err == nil {
		t.Error("config init over an existing file should fail without --force")
	}
	if _, err := execute(t, "config", "init", "--force", "--plain", "--config", path); err != nil {
		t.Errorf("config init --force error = %v", err)
	}

	out, err = execute(t, "config", "show", "--repeat-equals", "repeat", "--config", path)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"repeat_equals: repeat", "port: 7337", "message: Merry Christmas"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestPressCommand(t *testing.T) {
	srv, err := server.New(&server.Config{RepeatPolicy: calculator.RepeatNoop})
	if err != nil {
		t.Fatalf("server.New() error = %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	out, err := execute(t, "press", "--plain", "--url", url, "6*7=")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := strings.TrimSpace(out); got != "42" {
		t.Errorf("output = %q, want %q", got, "42")
	}

	if _, err := execute(t, "press", "--plain", "--url", url, "5", "sqrt"); !errors.Is(err, server.ErrRejected) {
		t.Errorf("Execute() error = %v, want ErrRejected", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, "calcpad ") {
		t.Errorf("output = %q, want prefix %q", out, "calcpad ")
	}
}

package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/boss-rush/config"
	"github.com/lixenwraith/boss-rush/parameter"
)

func TestNewWritesToFileWithSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, session, err := New(config.LogConfig{Level: "debug", File: path})
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "hello") || !strings.Contains(out, session) {
		t.Errorf("log output = %q", out)
	}
}

func TestNewDisabledWithoutSink(t *testing.T) {
	log, session, err := New(config.LogConfig{Level: "info"})
	if err != nil {
		t.Fatal(err)
	}
	if log.Core().Enabled(-1) || session == "" {
		t.Error("expected a disabled logger with a session id")
	}
}

func TestNewDevelopmentFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	log, _, err := New(config.LogConfig{Level: "debug", Development: true})
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("dev line")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, parameter.DevLogFile))
	if err != nil {
		t.Fatalf("dev log file: %v", err)
	}
	if !strings.Contains(string(data), "dev line") {
		t.Errorf("dev log = %q", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	if err == nil {
		t.Error("bad level accepted")
	}
}

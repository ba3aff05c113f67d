package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetup_LevelAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "server.log")

	closer, err := Setup(Options{Level: "warn", File: path, MaxSizeMB: 1, Console: &console})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Info().Msg("hidden")
	log.Warn().Str("root", "silkworm").Msg("visible")
	if closer == nil {
		t.Fatal("expected file closer")
	}
	_ = closer.Close()

	if strings.Contains(console.String(), "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(console.String(), "visible") {
		t.Errorf("console output %q missing warn line", console.String())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), `"root":"silkworm"`) {
		t.Errorf("log file %q missing field", b)
	}
}

func TestSetup_BadLevel(t *testing.T) {
	var console bytes.Buffer
	_, err := Setup(Options{Level: "loud", Console: &console})
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if err == nil {
		t.Error("bad level should be reported")
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("level %v, want info fallback", zerolog.GlobalLevel())
	}
}

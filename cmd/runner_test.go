package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mxsolis/contentbot/internal/shared"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config")
			}
			if runner.logger == nil {
				t.Error("expected default logger")
			}
			if runner.output != os.Stdout {
				t.Error("expected stdout output")
			}
		})
	})

	t.Run("loadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/from/file.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		config := runner.loadConfig(configPath)
		if config.Database.Path != "/from/file.db" {
			t.Errorf("expected config from file, got %s", config.Database.Path)
		}

		fallback := runner.loadConfig(filepath.Join(tmpDir, "missing.toml"))
		if fallback != runner.config {
			t.Error("expected the runner's config when the file is missing")
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
			t.Fatalf("failed to write JSON: %v", err)
		}
		if strings.TrimSpace(output.String()) != `{"key":"value"}` {
			t.Errorf("unexpected output %q", output.String())
		}

		output.Reset()
		if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
			t.Fatalf("failed to write pretty JSON: %v", err)
		}
		if !strings.Contains(output.String(), "\n  \"key\"") {
			t.Errorf("expected indented output, got %q", output.String())
		}
	})
}

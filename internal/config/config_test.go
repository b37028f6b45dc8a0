package config

import (
	"os"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/ggml-large-v3.bin",
					BinaryPath: "./whisper-cli",
				},
				Paths: PathsConfig{
					Recordings: "data/esp-recordings",
				},
				Upload: UploadConfig{
					Endpoint: "http://backend.local/rvg/new_rec",
				},
			},
			wantErr: false,
		},
		{
			name: "missing model path",
			config: Config{
				Whisper: WhisperConfig{
					BinaryPath: "./whisper-cli",
				},
				Paths: PathsConfig{
					Recordings: "data/esp-recordings",
				},
				Upload: UploadConfig{
					Endpoint: "http://backend.local/rvg/new_rec",
				},
			},
			wantErr: true,
		},
		{
			name: "missing recordings dir",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/ggml-large-v3.bin",
					BinaryPath: "./whisper-cli",
				},
				Upload: UploadConfig{
					Endpoint: "http://backend.local/rvg/new_rec",
				},
			},
			wantErr: true,
		},
		{
			name: "missing upload endpoint",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/ggml-large-v3.bin",
					BinaryPath: "./whisper-cli",
				},
				Paths: PathsConfig{
					Recordings: "data/esp-recordings",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Whisper: WhisperConfig{
			ModelPath:  "models/ggml-large-v3.bin",
			BinaryPath: "./whisper-cli",
		},
		Paths: PathsConfig{
			Recordings: "data/esp-recordings",
		},
		Upload: UploadConfig{
			Endpoint: "http://backend.local/rvg/new_rec",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Whisper.Language != "en" {
		t.Errorf("Language = %v, want en", cfg.Whisper.Language)
	}
	if cfg.Pipeline.QueueSize != 64 {
		t.Errorf("QueueSize = %v, want 64", cfg.Pipeline.QueueSize)
	}
	if cfg.Pipeline.PollInterval != time.Second {
		t.Errorf("PollInterval = %v, want 1s", cfg.Pipeline.PollInterval)
	}
	if cfg.Pipeline.ResultTTL != 30*time.Minute {
		t.Errorf("ResultTTL = %v, want 30m", cfg.Pipeline.ResultTTL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Logging.Level)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
whisper:
  model_path: "models/ggml-large-v3.bin"
  binary_path: "./whisper-cli"
  language: "en"

paths:
  recordings: "data/esp-recordings"
  chat_audio: "data/chat-recordings"

pipeline:
  queue_size: 16
  poll_interval: 500ms

upload:
  endpoint: "http://backend.local/rvg/new_rec"

logging:
  level: "debug"
  format: "text"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.ModelPath != "models/ggml-large-v3.bin" {
		t.Errorf("ModelPath = %v, want %v", cfg.Whisper.ModelPath, "models/ggml-large-v3.bin")
	}
	if cfg.Pipeline.QueueSize != 16 {
		t.Errorf("QueueSize = %v, want 16", cfg.Pipeline.QueueSize)
	}
	if cfg.Pipeline.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v, want 500ms", cfg.Pipeline.PollInterval)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

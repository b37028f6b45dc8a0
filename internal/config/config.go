package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Whisper  WhisperConfig  `yaml:"whisper"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Paths    PathsConfig    `yaml:"paths"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Upload   UploadConfig   `yaml:"upload"`
	Chat     ChatConfig     `yaml:"chat"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type PathsConfig struct {
	// Recordings is the drop directory the FTP server stores uploads in.
	Recordings string `yaml:"recordings"`
	// ChatAudio receives voice attachments saved by the chat front-end.
	ChatAudio string `yaml:"chat_audio"`
	Reports   string `yaml:"reports"`
}

type PipelineConfig struct {
	QueueSize    int           `yaml:"queue_size"`
	PollInterval time.Duration `yaml:"poll_interval"`
	ResultTTL    time.Duration `yaml:"result_ttl"`
}

type UploadConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

type ChatConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	// ResultWait bounds how long an adapter polls for a review result
	// before reporting it as still pending.
	ResultWait time.Duration `yaml:"result_wait"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and validates a YAML config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Paths.Recordings == "" {
		return fmt.Errorf("paths.recordings is required")
	}
	if c.Upload.Endpoint == "" {
		return fmt.Errorf("upload.endpoint is required")
	}

	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Paths.ChatAudio == "" {
		c.Paths.ChatAudio = "data/chat-recordings"
	}
	if c.Paths.Reports == "" {
		c.Paths.Reports = "data/reports"
	}
	if c.Pipeline.QueueSize == 0 {
		c.Pipeline.QueueSize = 64
	}
	if c.Pipeline.PollInterval == 0 {
		c.Pipeline.PollInterval = time.Second
	}
	if c.Pipeline.ResultTTL == 0 {
		c.Pipeline.ResultTTL = 30 * time.Minute
	}
	if c.Upload.Timeout == 0 {
		c.Upload.Timeout = 30 * time.Second
	}
	if c.Chat.ListenAddr == "" {
		c.Chat.ListenAddr = ":8090"
	}
	if c.Chat.ResultWait == 0 {
		c.Chat.ResultWait = 5 * time.Minute
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}

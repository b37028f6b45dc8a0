package transcriber

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revline/review-flow/internal/config"
	"github.com/revline/review-flow/internal/logger"
)

// fakeExecutor simulates ffmpeg and whisper invocations. The whisper step
// writes the transcript file the real binary would produce.
type fakeExecutor struct {
	calls      [][]string
	ffmpegErr  error
	whisperErr error
	transcript string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))

	if name == "ffmpeg" {
		if f.ffmpegErr != nil {
			return "", f.ffmpegErr
		}
		// Output path is the last argument.
		return "", os.WriteFile(args[len(args)-1], []byte("RIFF"), 0644)
	}

	if f.whisperErr != nil {
		return "", f.whisperErr
	}
	for i, arg := range args {
		if arg == "--output-file" {
			return "", os.WriteFile(args[i+1]+".txt", []byte(f.transcript), 0644)
		}
	}
	return "", errors.New("no --output-file argument")
}

func testConfig() config.WhisperConfig {
	return config.WhisperConfig{
		ModelPath:  "models/ggml-large-v3.bin",
		BinaryPath: "./whisper-cli",
		Language:   "en",
		Threads:    4,
	}
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "review.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranscribe(t *testing.T) {
	exec := &fakeExecutor{transcript: "The soup was cold.\n"}
	tr := New(testConfig(), exec, logger.New("error", "text"))

	audioPath := writeAudio(t)
	text, err := tr.Transcribe(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "The soup was cold." {
		t.Errorf("transcript = %q", text)
	}

	// ffmpeg preparation then whisper
	if len(exec.calls) != 2 {
		t.Fatalf("executor calls = %d, want 2", len(exec.calls))
	}
	if exec.calls[0][0] != "ffmpeg" {
		t.Errorf("first call = %s, want ffmpeg", exec.calls[0][0])
	}
	if exec.calls[1][0] != "./whisper-cli" {
		t.Errorf("second call = %s, want whisper binary", exec.calls[1][0])
	}

	// Whisper should consume the prepared file, not the original.
	whisperInput := argValue(exec.calls[1], "-f")
	if !strings.HasSuffix(whisperInput, "_speech.wav") {
		t.Errorf("whisper input = %s, want prepared file", whisperInput)
	}

	// Transcript artifact lands next to the original recording.
	artifact := strings.TrimSuffix(audioPath, ".wav") + ".txt"
	if _, err := os.Stat(artifact); err != nil {
		t.Errorf("transcript artifact missing: %v", err)
	}

	// Prepared temp file is cleaned up.
	prepared := strings.TrimSuffix(audioPath, ".wav") + "_speech.wav"
	if _, err := os.Stat(prepared); !os.IsNotExist(err) {
		t.Errorf("prepared file should be removed, stat err = %v", err)
	}
}

func TestTranscribePreparationFailureDegrades(t *testing.T) {
	exec := &fakeExecutor{
		ffmpegErr:  errors.New("unknown filter"),
		transcript: "Lovely evening.",
	}
	tr := New(testConfig(), exec, logger.New("error", "text"))

	audioPath := writeAudio(t)
	text, err := tr.Transcribe(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "Lovely evening." {
		t.Errorf("transcript = %q", text)
	}

	// Whisper falls back to the original file.
	whisperInput := argValue(exec.calls[1], "-f")
	if whisperInput != audioPath {
		t.Errorf("whisper input = %s, want original %s", whisperInput, audioPath)
	}
}

func TestTranscribeModelFailure(t *testing.T) {
	exec := &fakeExecutor{whisperErr: errors.New("model not found")}
	tr := New(testConfig(), exec, logger.New("error", "text"))

	if _, err := tr.Transcribe(context.Background(), writeAudio(t)); err == nil {
		t.Error("Transcribe() should fail when the model fails")
	}
}

func TestTranscribeEmptyOutput(t *testing.T) {
	exec := &fakeExecutor{transcript: "  \n"}
	tr := New(testConfig(), exec, logger.New("error", "text"))

	_, err := tr.Transcribe(context.Background(), writeAudio(t))
	if !errors.Is(err, ErrNoSpeech) {
		t.Errorf("Transcribe() error = %v, want ErrNoSpeech", err)
	}
}

func argValue(call []string, flag string) string {
	for i, arg := range call {
		if arg == flag && i+1 < len(call) {
			return call[i+1]
		}
	}
	return ""
}

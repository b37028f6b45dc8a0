package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrNoSpeech is returned when the model ran but produced no usable text.
var ErrNoSpeech = errors.New("transcription produced no text")

// Transcribe converts a recording into text. The audio is first prepared
// for speech recognition (volume boost, denoise, 16kHz mono WAV); if that
// preparation fails the original file is used as-is. The transcript is
// persisted next to the input as <base>.txt and returned.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	t.logger.Info(ctx, "Transcribing %s", audioPath)

	prepared := t.tryPrepareForSpeech(ctx, audioPath)
	if prepared != audioPath {
		defer t.cleanupTempFile(ctx, prepared)
	}

	// Whisper writes <prefix>.txt; pointing the prefix at the original
	// file keeps the transcript artifact next to the recording.
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", prepared,
		"-otxt",
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"--output-file", outputPrefix,
	}

	start := time.Now()
	if _, err := t.executor.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	transcriptPath := outputPrefix + ".txt"
	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return "", fmt.Errorf("read transcript %s: %w", transcriptPath, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrNoSpeech
	}

	t.logger.Info(ctx, "Transcribed %s in %s (%d bytes)", audioPath, time.Since(start), len(text))
	return text, nil
}

// tryPrepareForSpeech boosts volume, denoises, and resamples the recording
// to the 16kHz mono WAV the model expects. Returns the path to the
// prepared file, or the original path when ffmpeg fails so the
// transcription can still proceed on the raw recording.
func (t *implTranscriber) tryPrepareForSpeech(ctx context.Context, audioPath string) string {
	preparedPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + "_speech.wav"

	args := []string{
		"-y",
		"-i", audioPath,
		"-af", "volume=1.7, arnndn=m=mp.rnnn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		preparedPath,
	}

	if _, err := t.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		t.logger.Warn(ctx, "Speech preparation failed, using original audio: %v", err)
		return audioPath
	}

	t.logger.Debug(ctx, "Prepared %s for speech recognition", preparedPath)
	return preparedPath
}

func (t *implTranscriber) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		t.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}

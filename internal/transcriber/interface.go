package transcriber

import "context"

// Transcriber converts an audio recording into text. Implementations may
// hold a loaded model and are reused across calls by a single owner; they
// are not required to be safe for concurrent use.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

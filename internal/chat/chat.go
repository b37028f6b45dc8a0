package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/revline/review-flow/internal/pipeline"
	"github.com/revline/review-flow/internal/review"
)

// allowedExtensions lists the voice attachment formats the gateway
// accepts from guests.
var allowedExtensions = []string{".wav", ".ogg", ".mp3"}

// inboundMessage is one frame received from a guest.
type inboundMessage struct {
	// Type is "start", "text" or "audio".
	Type string `json:"type"`
	User string `json:"user,omitempty"`
	Text string `json:"text,omitempty"`
	// FileName carries the attachment name for audio frames; Data holds
	// the recording bytes (base64 on the wire).
	FileName string `json:"file_name,omitempty"`
	Data     []byte `json:"data,omitempty"`
}

type outboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// dialog wraps a guest connection. Result goroutines reply
// concurrently with the read loop, so writes are serialized.
type dialog struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (d *dialog) send(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conn.WriteJSON(outboundMessage{Type: "reply", Text: text})
}

// Start runs the gateway until ctx is cancelled
func (s *implServer) Start(ctx context.Context) error {
	s.runCtx = ctx
	s.logger.Info(ctx, "Chat gateway listening on %s", s.cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "Chat gateway shutdown: %v", err)
		}
		s.logger.Info(ctx, "Waiting for pending chat reviews to be collected...")
		s.wg.Wait()
		s.logger.Info(ctx, "Chat gateway stopped")
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("chat gateway: %w", err)
	}
}

// Stop closes the listener immediately
func (s *implServer) Stop() error {
	return s.server.Close()
}

func (s *implServer) handleWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(ctx, "WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	d := &dialog{conn: conn}
	s.logger.Info(ctx, "Guest connected: %s", conn.RemoteAddr())

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn(ctx, "Guest connection error: %v", err)
			}
			return
		}
		s.handleMessage(ctx, d, msg)
	}
}

func (s *implServer) handleMessage(ctx context.Context, d *dialog, msg inboundMessage) {
	switch msg.Type {
	case "start":
		if err := d.send(startReply); err != nil {
			s.logger.Warn(ctx, "Failed to send greeting: %v", err)
		}

	case "text":
		s.handleText(ctx, d, msg)

	case "audio":
		s.handleAudio(ctx, d, msg)

	default:
		s.logger.Warn(ctx, "Unsupported message type: %q", msg.Type)
		if err := d.send(attachmentDenied); err != nil {
			s.logger.Warn(ctx, "Failed to send denial: %v", err)
		}
	}
}

func (s *implServer) handleText(ctx context.Context, d *dialog, msg inboundMessage) {
	if err := d.send(reviewAccepted); err != nil {
		s.logger.Warn(ctx, "Failed to send acceptance: %v", err)
	}

	token, err := s.pipeline.SubmitText(msg.Text)
	if err != nil {
		s.logger.Error(ctx, "Failed to submit text review: %v", err)
		s.sendOrLog(ctx, d, transcriptionError)
		return
	}

	name := reviewName(msg.User)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.collectResult(s.runCtx, d, name, "", token)
	}()
}

func (s *implServer) handleAudio(ctx context.Context, d *dialog, msg inboundMessage) {
	if len(msg.Data) == 0 || msg.FileName == "" {
		s.sendOrLog(ctx, d, attachmentDenied)
		return
	}

	ext := strings.ToLower(filepath.Ext(msg.FileName))
	if !isAllowedExtension(ext) {
		s.sendOrLog(ctx, d, filetypeDenied+ext)
		return
	}

	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		s.logger.Error(ctx, "Failed to create chat audio dir: %v", err)
		s.sendOrLog(ctx, d, transcriptionError)
		return
	}

	name := reviewName(msg.User)
	audioPath := filepath.Join(s.audioDir, name+ext)
	if err := os.WriteFile(audioPath, msg.Data, 0644); err != nil {
		s.logger.Error(ctx, "Failed to save voice attachment: %v", err)
		s.sendOrLog(ctx, d, transcriptionError)
		return
	}

	if err := d.send(reviewAccepted); err != nil {
		s.logger.Warn(ctx, "Failed to send acceptance: %v", err)
	}

	token, err := s.pipeline.SubmitAudio(audioPath)
	if err != nil {
		s.logger.Error(ctx, "Failed to submit voice review: %v", err)
		s.sendOrLog(ctx, d, transcriptionError)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.collectResult(s.runCtx, d, name, audioPath, token)
	}()
}

// collectResult polls the pipeline until the review resolves, replies
// to the guest and forwards the review to the backend.
func (s *implServer) collectResult(ctx context.Context, d *dialog, name, audioPath string, token uuid.UUID) {
	var res review.Result

	operation := func() error {
		r, err := s.pipeline.Result(token)
		if err != nil {
			return err
		}
		res = r
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = s.cfg.ResultWait

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		if errors.Is(err, pipeline.ErrNotReady) {
			s.logger.Warn(ctx, "Chat review %s still pending after %s, giving up", name, s.cfg.ResultWait)
		} else {
			s.logger.Error(ctx, "Collecting chat review %s failed: %v", name, err)
		}
		s.sendOrLog(ctx, d, transcriptionError)
		return
	}

	if !res.Completed {
		s.logger.Error(ctx, "Chat review %s failed in the pipeline", name)
		s.sendOrLog(ctx, d, transcriptionError)
		return
	}

	s.sendOrLog(ctx, d, resolveReply(res.Issues))

	if err := s.uploader.Upload(ctx, audioPath, res.Analysis); err != nil {
		s.logger.Error(ctx, "Upload of chat review %s failed: %v", name, err)
		s.sendOrLog(ctx, d, uploadError)
	}

	if err := s.reports.Record(ctx, name, res); err != nil {
		s.logger.Warn(ctx, "Report for chat review %s failed: %v", name, err)
	}
}

func (s *implServer) sendOrLog(ctx context.Context, d *dialog, text string) {
	if err := d.send(text); err != nil {
		s.logger.Debug(ctx, "Failed to reply to guest: %v", err)
	}
}

// resolveReply formats the closing reply for a resolved review.
func resolveReply(issues []review.Issue) string {
	if len(issues) == 0 {
		return doneNoIssues
	}

	var b strings.Builder
	b.WriteString(doneWithIssues)
	b.WriteString("\n")
	for _, issue := range issues {
		b.WriteString(issue.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// reviewName builds a unique name for a chat review, keyed by the
// guest and the time of submission.
func reviewName(user string) string {
	if user == "" {
		user = "Anonymous"
	}
	return fmt.Sprintf("chat@%s_%d", user, time.Now().Unix())
}

func isAllowedExtension(ext string) bool {
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

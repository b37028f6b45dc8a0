package uploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/revline/review-flow/internal/review"
)

// Upload posts the review as multipart form data: file_name,
// transcription, summary, and a JSON-encoded issues list, plus the audio
// file itself when the review came from a recording.
func (u *implUploader) Upload(ctx context.Context, audioPath string, analysis review.Analysis) error {
	issuesJSON, err := review.IssuesJSON(analysis.Issues)
	if err != nil {
		return fmt.Errorf("encode issues: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fileName := ""
	if audioPath != "" {
		fileName = filepath.Base(audioPath)
	}

	fields := map[string]string{
		"file_name":     fileName,
		"transcription": analysis.CorrectedText,
		"summary":       analysis.Summary,
		"issues":        issuesJSON,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("write field %s: %w", name, err)
		}
	}

	// Plain transcripts are already carried by the transcription field;
	// only genuine recordings travel as a file part.
	if audioPath != "" && filepath.Ext(audioPath) != ".txt" {
		if err := attachFile(writer, audioPath); err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("API-Key", u.apiKey)

	u.logger.Debug(ctx, "Uploading review to %s (file: %s)", u.endpoint, fileName)

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload rejected: %d: %s", resp.StatusCode, text)
	}

	u.logger.Info(ctx, "Review uploaded to the backend")
	return nil
}

func attachFile(writer *multipart.Writer, audioPath string) error {
	file, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("open audio %s: %w", audioPath, err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("copy audio into request: %w", err)
	}
	return nil
}

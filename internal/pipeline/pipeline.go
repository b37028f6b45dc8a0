package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/revline/review-flow/internal/review"
)

// ErrNotReady is returned by Result while the worker has not yet stored a
// result for the token, or after the result has already been collected.
var ErrNotReady = errors.New("result not ready")

// ErrQueueFull is returned by Submit calls when the backlog is at capacity.
var ErrQueueFull = errors.New("pipeline queue full")

// ErrStopped is returned by Submit calls after the worker loop has exited.
var ErrStopped = errors.New("pipeline stopped")

type audioItem struct {
	token uuid.UUID
	path  string
}

type textItem struct {
	token uuid.UUID
	text  string
}

func (p *implPipeline) SubmitAudio(audioPath string) (uuid.UUID, error) {
	token := uuid.New()

	select {
	case <-p.done:
		return uuid.Nil, ErrStopped
	default:
	}

	select {
	case p.audioQueue <- audioItem{token: token, path: audioPath}:
	default:
		return uuid.Nil, ErrQueueFull
	}

	p.logger.Debug(context.Background(), "Queued audio review %s: %s", token, audioPath)
	return token, nil
}

func (p *implPipeline) SubmitText(text string) (uuid.UUID, error) {
	token := uuid.New()

	select {
	case <-p.done:
		return uuid.Nil, ErrStopped
	default:
	}

	select {
	case p.textQueue <- textItem{token: token, text: text}:
	default:
		return uuid.Nil, ErrQueueFull
	}

	p.logger.Debug(context.Background(), "Queued text review %s (%d bytes)", token, len(text))
	return token, nil
}

func (p *implPipeline) Result(token uuid.UUID) (review.Result, error) {
	res, ok := p.results.take(token)
	if !ok {
		return review.Result{}, ErrNotReady
	}
	return res, nil
}

// Run drains the audio queue before the text queue on every cycle, so
// queued recordings see lower latency than queued texts under load.
// Within each queue FIFO order is preserved. Transcriber and analyzer
// failures are converted into Completed=false results; they never stop
// the loop.
func (p *implPipeline) Run(ctx context.Context) error {
	defer close(p.done)

	p.logger.Info(ctx, "Review worker started (poll %s, result TTL %s)", p.pollInterval, p.resultTTL)

	lastSweep := time.Now()

	for {
		if ctx.Err() != nil {
			p.logger.Info(ctx, "Review worker stopped")
			return ctx.Err()
		}

		worked := false

		select {
		case item := <-p.audioQueue:
			worked = true
			p.results.put(item.token, p.processAudio(ctx, item.path))
		default:
		}

		select {
		case item := <-p.textQueue:
			worked = true
			p.results.put(item.token, p.processText(ctx, item.text, ""))
		default:
		}

		if time.Since(lastSweep) >= p.resultTTL {
			if evicted := p.results.sweep(p.resultTTL); evicted > 0 {
				p.logger.Warn(ctx, "Evicted %d unclaimed review results", evicted)
			}
			lastSweep = time.Now()
		}

		if worked {
			continue
		}

		select {
		case <-ctx.Done():
			p.logger.Info(ctx, "Review worker stopped")
			return ctx.Err()
		case <-time.After(p.pollInterval):
		}
	}
}

func (p *implPipeline) processAudio(ctx context.Context, audioPath string) review.Result {
	text, err := p.guardTranscribe(ctx, audioPath)
	if err != nil {
		p.logger.Error(ctx, "Transcription of %s failed: %v", audioPath, err)
		return review.Failed(audioPath)
	}

	return p.processText(ctx, text, audioPath)
}

func (p *implPipeline) processText(ctx context.Context, text, audioPath string) review.Result {
	analysis, err := p.guardAnalyze(ctx, text)
	if err != nil {
		p.logger.Error(ctx, "Review analysis failed: %v", err)
		return review.Failed(audioPath)
	}

	return review.Result{Analysis: analysis, AudioPath: audioPath, Completed: true}
}

// guardTranscribe contains panics from the transcriber so a bad recording
// cannot kill the worker loop.
func (p *implPipeline) guardTranscribe(ctx context.Context, audioPath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transcriber panic: %v", r)
		}
	}()
	return p.transcriber.Transcribe(ctx, audioPath)
}

// guardAnalyze contains panics from the analyzer, mirroring guardTranscribe.
func (p *implPipeline) guardAnalyze(ctx context.Context, text string) (analysis review.Analysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analyzer panic: %v", r)
		}
	}()
	return p.analyzer.Analyze(ctx, text)
}

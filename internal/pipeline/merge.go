package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lyrebird/internal/logging"
	"lyrebird/internal/subtitle"
)

// MergeRequest combines a local audio file with a local SRT file.
type MergeRequest struct {
	AudioPath     string
	SubtitlePath  string
	OutputPath    string
	Window        subtitle.Window
	EnhanceStereo bool
}

// Merge converts a local audio file to MP3, renders the SRT file as LRC,
// and embeds the lyrics. The input audio is never modified; all work
// happens on an intermediate copy next to the output.
func (p *Pipeline) Merge(ctx context.Context, req MergeRequest) (*Result, error) {
	if strings.TrimSpace(req.AudioPath) == "" {
		return nil, errors.New("merge: audio path required")
	}
	if strings.TrimSpace(req.SubtitlePath) == "" {
		return nil, errors.New("merge: subtitle path required")
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		base := filepath.Base(req.AudioPath)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		outputPath = filepath.Join(p.cfg.Paths.OutputDir, stem+".mp3")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	logger := p.logger.With(slog.String("audio", req.AudioPath))
	logger.Info("starting merge", slog.String("subtitles", req.SubtitlePath))

	data, err := os.ReadFile(req.SubtitlePath)
	if err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}
	document, count, err := RenderLyrics(string(data), req.Window)
	if err != nil {
		return nil, err
	}

	workPath := outputPath + ".work.mp3"
	defer os.Remove(workPath)

	if err := p.audio.ConvertToMP3(ctx, req.AudioPath, workPath); err != nil {
		return nil, err
	}

	result := &Result{OutputPath: outputPath, CueCount: count, Provenance: "local"}
	if req.EnhanceStereo || p.cfg.Audio.EnhanceStereo {
		applied, err := p.audio.EnhanceStereo(ctx, workPath)
		if err != nil {
			return nil, err
		}
		result.Enhanced = applied
	}

	if err := p.audio.EmbedLyrics(ctx, workPath, document, outputPath); err != nil {
		_ = p.notifier.NotifyRunFailed(ctx, filepath.Base(req.AudioPath), err)
		return nil, err
	}

	logger.Info("merge complete",
		slog.String("output", outputPath),
		slog.Int("cues", count))
	if err := p.notifier.NotifyRunCompleted(ctx, filepath.Base(outputPath), outputPath); err != nil {
		logger.Warn("notification failed", logging.Error(err))
	}
	return result, nil
}

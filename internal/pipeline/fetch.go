package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"lyrebird/internal/library"
	"lyrebird/internal/logging"
	"lyrebird/internal/media/ytdlp"
	"lyrebird/internal/subtitle"
	"lyrebird/internal/tracks"
)

// FetchRequest describes a full download run.
type FetchRequest struct {
	URL           string
	Lang          string
	Window        subtitle.Window
	EnhanceStereo bool
	NoCleanup     bool
	OutputDir     string
}

// Fetch runs the whole pipeline for a URL: metadata, track selection,
// download, lyric conversion, and embedding. A completed run recorded in
// the history whose output file still exists is reused without touching
// the network. Track selection failures surface as *tracks.NotFoundError.
func (p *Pipeline) Fetch(ctx context.Context, req FetchRequest) (*Result, error) {
	lang := normalizeLang(req.Lang)
	if lang == "" {
		lang = p.cfg.Download.Language
	}

	video, err := p.downloader.Metadata(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	logger := p.logger.With(
		slog.String("run_id", uuid.NewString()),
		slog.String("video_id", video.ID),
		slog.String("lang", lang),
	)
	logger.Info("starting fetch", slog.String("title", video.Title))

	// A prior successful run for the same video and language stands in
	// for the whole pipeline, unless this run wants a different slice of
	// the timeline.
	if p.store != nil && !req.Window.Bounded() {
		prior, err := p.store.FindCompleted(ctx, video.ID, lang)
		if err != nil {
			return nil, err
		}
		if prior.Succeeded() {
			if _, statErr := os.Stat(prior.OutputPath); statErr == nil {
				logger.Info("reusing completed run", slog.String("output", prior.OutputPath))
				_ = p.notifier.NotifyRunReused(ctx, video.Title, prior.OutputPath)
				return &Result{
					Video:      video,
					OutputPath: prior.OutputPath,
					Provenance: prior.Provenance,
					Fallback:   prior.Fallback,
					Reused:     true,
				}, nil
			}
		}
	}

	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.SourceDir, ".lyrebird.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire source lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another run is using %s", p.cfg.Paths.SourceDir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release source lock", logging.Error(err))
		}
	}()

	var run *library.Run
	if p.store != nil {
		run, err = p.store.NewRun(ctx, video.ID, video.Title, lang)
		if err != nil {
			return nil, err
		}
	}

	result, err := p.fetchLocked(ctx, logger, req, video, lang)
	if p.store != nil && run != nil {
		if err != nil {
			run.Status = library.StatusFailed
			run.ErrorMessage = err.Error()
		} else {
			run.Status = library.StatusCompleted
			run.Provenance = result.Provenance
			run.Fallback = result.Fallback
			run.OutputPath = result.OutputPath
		}
		if updateErr := p.store.Update(ctx, run); updateErr != nil {
			logger.Warn("failed to record run", logging.Error(updateErr))
		}
	}
	if err != nil {
		_ = p.notifier.NotifyRunFailed(ctx, video.Title, err)
		return nil, err
	}

	logger.Info("fetch complete",
		slog.String("output", result.OutputPath),
		slog.Int("cues", result.CueCount),
		slog.Bool("fallback", result.Fallback))
	_ = p.notifier.NotifyRunCompleted(ctx, video.Title, result.OutputPath)
	return result, nil
}

func (p *Pipeline) fetchLocked(ctx context.Context, logger *slog.Logger, req FetchRequest, video ytdlp.Video, lang string) (*Result, error) {
	sourceDir := p.cfg.Paths.SourceDir
	audioPath := filepath.Join(sourceDir, video.ID+".mp3")
	subtitlePath := filepath.Join(sourceDir, fmt.Sprintf("%s.%s.%s", video.ID, lang, p.cfg.Download.SubtitleFormat))
	lyricsPath := filepath.Join(sourceDir, video.ID+".lrc")

	result := &Result{Video: video}

	// Cached sources are full-length; a trimmed run downloads a clipped
	// copy instead of reusing them.
	cached := !req.Window.Bounded() && fileExists(audioPath) && fileExists(subtitlePath)
	if cached {
		logger.Info("using cached source files", slog.String("audio", audioPath))
		result.Provenance = "cached"
	} else {
		selection, err := p.selectTrack(ctx, req.URL, lang)
		if err != nil {
			return nil, err
		}
		result.Provenance = string(selection.Track.Kind)
		result.Fallback = selection.Fallback
		if selection.Fallback {
			logger.Warn("no manual track, falling back to automatic captions")
		}

		err = p.downloader.Download(ctx, ytdlp.DownloadRequest{
			URL:            req.URL,
			Lang:           selection.Track.Lang,
			Auto:           selection.Track.Kind == tracks.KindAuto,
			SubtitleFormat: p.cfg.Download.SubtitleFormat,
			Section:        sectionExpr(req.Window),
			OutputTemplate: filepath.Join(sourceDir, video.ID+".%(ext)s"),
		})
		if err != nil {
			return nil, err
		}
		if !fileExists(subtitlePath) {
			return nil, fmt.Errorf("expected subtitle file %s was not written", subtitlePath)
		}
	}

	if req.EnhanceStereo || p.cfg.Audio.EnhanceStereo {
		applied, err := p.audio.EnhanceStereo(ctx, audioPath)
		if err != nil {
			return nil, err
		}
		result.Enhanced = applied
	}

	data, err := os.ReadFile(subtitlePath)
	if err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}
	document, count, err := RenderLyrics(string(data), req.Window)
	if err != nil {
		return nil, err
	}
	result.CueCount = count
	if err := os.WriteFile(lyricsPath, []byte(document), 0o644); err != nil {
		return nil, fmt.Errorf("write lyrics: %w", err)
	}
	result.LyricsPath = lyricsPath

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = p.cfg.Paths.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	outputPath := filepath.Join(outputDir, fmt.Sprintf("%s [%s].mp3", video.Title, video.ID))
	if err := p.audio.EmbedLyrics(ctx, audioPath, document, outputPath); err != nil {
		return nil, err
	}
	result.OutputPath = outputPath

	if !req.NoCleanup && !p.cfg.Cleanup.KeepSources {
		for _, path := range []string{audioPath, subtitlePath, lyricsPath} {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				logger.Warn("failed to remove source file",
					slog.String("path", path), logging.Error(err))
			}
		}
		result.LyricsPath = ""
	}

	return result, nil
}

// selectTrack lists the available tracks and picks one for lang. An empty
// listing is reported as a NotFoundError with nothing to offer.
func (p *Pipeline) selectTrack(ctx context.Context, url, lang string) (tracks.Selection, error) {
	entries, err := p.downloader.ListTracks(ctx, url)
	if err != nil {
		return tracks.Selection{}, err
	}
	return tracks.Select(tracks.NewCatalog(entries), lang)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

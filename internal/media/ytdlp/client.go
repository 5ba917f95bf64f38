package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"lyrebird/internal/config"
	"lyrebird/internal/logging"
	"lyrebird/internal/tracks"
)

// Video identifies a media item: its stable ID and a title already
// sanitized for use in file names.
type Video struct {
	ID    string
	Title string
}

// DownloadRequest describes one audio+subtitle download.
type DownloadRequest struct {
	URL            string
	Lang           string
	Auto           bool
	SubtitleFormat string
	// Section is a yt-dlp download-sections expression such as
	// "*0:10-2:21". Empty downloads the whole video.
	Section        string
	OutputTemplate string
}

// Client runs yt-dlp. The zero value is not usable; construct with New.
type Client struct {
	retries    int
	retryDelay time.Duration
	logger     *slog.Logger
}

// New builds a client using the configured listing retry policy.
func New(cfg *config.Config, logger *slog.Logger) *Client {
	retries := cfg.Download.ListRetries
	if retries < 1 {
		retries = 1
	}
	return &Client{
		retries:    retries,
		retryDelay: time.Duration(cfg.Download.ListRetryDelay) * time.Second,
		logger:     logging.WithComponent(logger, "ytdlp"),
	}
}

// Metadata fetches the video ID and title for a URL.
func (c *Client) Metadata(ctx context.Context, url string) (Video, error) {
	result, err := ytdlp.New().
		Print("id").
		Print("title").
		SkipDownload().
		NoPlaylist().
		Run(ctx, url)
	if err != nil {
		return Video{}, fmt.Errorf("yt-dlp metadata: %w", err)
	}

	lines := nonEmptyLines(result.Stdout)
	if len(lines) < 2 {
		return Video{}, fmt.Errorf("yt-dlp metadata: unexpected output %q", result.Stdout)
	}
	return Video{ID: lines[0], Title: SanitizeTitle(lines[1])}, nil
}

// ListTracks queries the available subtitle tracks for a URL and returns
// them as ordered catalog entries. An empty listing is retried per the
// configured policy before being returned as-is; an empty result is a
// selection problem for the caller, not a client error.
func (c *Client) ListTracks(ctx context.Context, url string) ([]tracks.Entry, error) {
	for attempt := 1; ; attempt++ {
		result, err := ytdlp.New().
			ListSubs().
			SkipDownload().
			NoPlaylist().
			Run(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("yt-dlp list subtitles: %w", err)
		}

		entries := parseListing(result.Stdout)
		if len(entries) > 0 {
			return entries, nil
		}
		if attempt >= c.retries {
			c.logger.Warn("subtitle listing still empty, giving up", slog.Int("attempts", attempt))
			return nil, nil
		}

		c.logger.Warn("subtitle listing empty, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", c.retries),
			slog.Duration("delay", c.retryDelay))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}
}

// Download extracts audio as mp3 and writes the requested subtitle track
// next to it.
func (c *Client) Download(ctx context.Context, req DownloadRequest) error {
	if strings.TrimSpace(req.URL) == "" {
		return errors.New("download: url required")
	}
	if strings.TrimSpace(req.OutputTemplate) == "" {
		return errors.New("download: output template required")
	}

	cmd := ytdlp.New().
		ExtractAudio().
		AudioFormat("mp3").
		SubLangs(req.Lang).
		SubFormat(req.SubtitleFormat).
		NoPlaylist().
		Output(req.OutputTemplate)
	if req.Auto {
		cmd = cmd.WriteAutoSubs()
	} else {
		cmd = cmd.WriteSubs()
	}
	if req.Section != "" {
		cmd = cmd.DownloadSections(req.Section)
	}

	c.logger.Info("downloading audio and subtitles",
		slog.String("lang", req.Lang),
		slog.Bool("auto", req.Auto),
		slog.String("section", req.Section))
	if _, err := cmd.Run(ctx, req.URL); err != nil {
		return fmt.Errorf("yt-dlp download: %w", err)
	}
	return nil
}

// SanitizeTitle replaces characters that are unsafe in file names.
func SanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', '*', '?', ':', '"', '<', '>', '|':
			return '_'
		default:
			return r
		}
	}, strings.TrimSpace(title))
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

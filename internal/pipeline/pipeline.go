package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lyrebird/internal/config"
	"lyrebird/internal/library"
	"lyrebird/internal/logging"
	"lyrebird/internal/lyrics"
	"lyrebird/internal/media/ffmpeg"
	"lyrebird/internal/media/ytdlp"
	"lyrebird/internal/notifications"
	"lyrebird/internal/subtitle"
	"lyrebird/internal/timecode"
	"lyrebird/internal/tracks"
)

// Byline is written as the first line of every generated LRC document.
const Byline = "lyrebird"

// Downloader is the yt-dlp surface the pipeline depends on.
type Downloader interface {
	Metadata(ctx context.Context, url string) (ytdlp.Video, error)
	ListTracks(ctx context.Context, url string) ([]tracks.Entry, error)
	Download(ctx context.Context, req ytdlp.DownloadRequest) error
}

// Pipeline wires the collaborators for fetch and merge runs.
type Pipeline struct {
	cfg        *config.Config
	downloader Downloader
	audio      ffmpeg.Client
	store      *library.Store
	notifier   notifications.Service
	logger     *slog.Logger
}

// New builds a pipeline. The store may be nil, in which case no history
// is recorded and no completed run is reused.
func New(cfg *config.Config, downloader Downloader, audio ffmpeg.Client, store *library.Store, notifier notifications.Service, logger *slog.Logger) *Pipeline {
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	return &Pipeline{
		cfg:        cfg,
		downloader: downloader,
		audio:      audio,
		store:      store,
		notifier:   notifier,
		logger:     logging.WithComponent(logger, "pipeline"),
	}
}

// Result summarizes a finished run.
type Result struct {
	Video      ytdlp.Video
	OutputPath string
	LyricsPath string
	Provenance string
	Fallback   bool
	CueCount   int
	Reused     bool
	Enhanced   bool
}

// RenderLyrics converts raw SRT input into an LRC document. The window
// selects cues by their original start time; when the window has a lower
// bound the surviving cues are re-based against it so the lyrics line up
// with a clip extracted at that point.
func RenderLyrics(input string, window subtitle.Window) (string, int, error) {
	cues, err := subtitle.Parse(input)
	if err != nil {
		return "", 0, err
	}

	offset := timecode.FromMillis(0)
	if window.From != nil {
		offset = *window.From
	}
	cues = subtitle.Transform(cues, offset, window)
	if len(cues) == 0 {
		return "", 0, fmt.Errorf("no cues within %s", describeWindow(window))
	}
	return lyrics.EncodeWithByline(cues, Byline), len(cues), nil
}

func describeWindow(w subtitle.Window) string {
	from, to := "start", "end"
	if w.From != nil {
		from = w.From.String()
	}
	if w.To != nil {
		to = w.To.String()
	}
	return fmt.Sprintf("the requested range %s to %s", from, to)
}

// sectionExpr renders a window as a yt-dlp --download-sections expression.
func sectionExpr(w subtitle.Window) string {
	if !w.Bounded() {
		return ""
	}
	from := "0:00"
	if w.From != nil {
		from = clockSeconds(*w.From)
	}
	if w.To == nil {
		return fmt.Sprintf("*%s-inf", from)
	}
	return fmt.Sprintf("*%s-%s", from, clockSeconds(*w.To))
}

func clockSeconds(t timecode.Timecode) string {
	total := t.Millis() / 1000
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func normalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"lyrebird/internal/config"
	"lyrebird/internal/logging"
)

var commandContext = exec.CommandContext

// stereoFilter widens the stereo field and pulls the level back down so
// the result does not clip. Only applied to two-channel sources.
const stereoFilter = "extrastereo=m=2.5,haas=level_in=1:level_out=1:side_gain=0.8,volume=0.7"

// Client defines the audio processing behaviour the pipeline depends on.
type Client interface {
	ConvertToMP3(ctx context.Context, inputPath, outputPath string) error
	EnhanceStereo(ctx context.Context, path string) (bool, error)
	EmbedLyrics(ctx context.Context, audioPath, lyrics, outputPath string) error
	Channels(ctx context.Context, path string) (int, error)
}

// CLI wraps the ffmpeg and ffprobe binaries.
type CLI struct {
	ffmpeg     string
	ffprobe    string
	bitrate    string
	sampleRate int
	logger     *slog.Logger
}

// NewCLI constructs a CLI client from the configured binaries and audio
// settings.
func NewCLI(cfg *config.Config, logger *slog.Logger) *CLI {
	return &CLI{
		ffmpeg:     cfg.FFmpegBinary(),
		ffprobe:    cfg.FFprobeBinary(),
		bitrate:    cfg.Download.AudioBitrate,
		sampleRate: cfg.Audio.SampleRate,
		logger:     logging.WithComponent(logger, "ffmpeg"),
	}
}

// ConvertToMP3 re-encodes any audio or video input to an MP3 file at the
// configured bitrate and sample rate, dropping video streams.
func (c *CLI) ConvertToMP3(ctx context.Context, inputPath, outputPath string) error {
	if strings.TrimSpace(inputPath) == "" {
		return errors.New("convert: input path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("convert: output path required")
	}

	args := []string{
		"-y", "-i", inputPath,
		"-vn",
		"-acodec", "mp3",
		"-ab", c.bitrate,
		"-ar", strconv.Itoa(c.sampleRate),
		outputPath,
	}
	c.logger.Info("converting to mp3",
		slog.String("input", inputPath),
		slog.String("bitrate", c.bitrate))
	if _, err := c.run(ctx, c.ffmpeg, args...); err != nil {
		return fmt.Errorf("ffmpeg convert: %w", err)
	}
	return nil
}

// EnhanceStereo applies the stereo widening filter to path in place. The
// filter only makes sense on two-channel audio, so mono and multichannel
// sources are left untouched; the return value reports whether the filter
// was applied.
func (c *CLI) EnhanceStereo(ctx context.Context, path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, errors.New("enhance: path required")
	}

	channels, err := c.Channels(ctx, path)
	if err != nil {
		return false, err
	}
	if channels != 2 {
		c.logger.Info("skipping stereo enhancement",
			slog.String("path", path),
			slog.Int("channels", channels))
		return false, nil
	}

	tmp := path + ".enhanced.mp3"
	args := []string{
		"-y", "-i", path,
		"-af", stereoFilter,
		"-acodec", "mp3",
		"-ab", c.bitrate,
		"-ar", strconv.Itoa(c.sampleRate),
		tmp,
	}
	c.logger.Info("applying stereo enhancement", slog.String("path", path))
	if _, err := c.run(ctx, c.ffmpeg, args...); err != nil {
		return false, fmt.Errorf("ffmpeg enhance: %w", err)
	}

	enhanced, err := c.Channels(ctx, tmp)
	if err != nil {
		os.Remove(tmp)
		return false, fmt.Errorf("verify enhanced output: %w", err)
	}
	if enhanced != 2 {
		os.Remove(tmp)
		return false, fmt.Errorf("verify enhanced output: expected 2 channels, got %d", enhanced)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false, fmt.Errorf("replace original: %w", err)
	}
	return true, nil
}

// EmbedLyrics copies the audio stream to outputPath with the lyrics text
// attached as container metadata. The audio is not re-encoded.
func (c *CLI) EmbedLyrics(ctx context.Context, audioPath, lyrics, outputPath string) error {
	if strings.TrimSpace(audioPath) == "" {
		return errors.New("embed: audio path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("embed: output path required")
	}

	args := []string{
		"-y", "-i", audioPath,
		"-metadata", "lyrics=" + lyrics,
		"-codec", "copy",
		outputPath,
	}
	c.logger.Info("embedding lyrics",
		slog.String("input", audioPath),
		slog.String("output", outputPath))
	if _, err := c.run(ctx, c.ffmpeg, args...); err != nil {
		return fmt.Errorf("ffmpeg embed lyrics: %w", err)
	}
	return nil
}

// Channels returns the channel count of the first audio stream in path.
func (c *CLI) Channels(ctx context.Context, path string) (int, error) {
	if strings.TrimSpace(path) == "" {
		return 0, errors.New("channels: path required")
	}

	args := []string{
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=channels",
		"-of", "csv=p=0",
		"--", path,
	}
	output, err := c.run(ctx, c.ffprobe, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe channels: %w", err)
	}
	channels, err := strconv.Atoi(strings.TrimSpace(output))
	if err != nil {
		return 0, fmt.Errorf("ffprobe channels: unexpected output %q", strings.TrimSpace(output))
	}
	return channels, nil
}

func (c *CLI) run(ctx context.Context, binary string, args ...string) (string, error) {
	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}

var _ Client = (*CLI)(nil)

// Package ffmpeg wraps the ffmpeg and ffprobe command-line tools for the
// audio operations lyrebird performs: converting downloads to MP3,
// widening stereo sources, and embedding lyrics metadata.
package ffmpeg

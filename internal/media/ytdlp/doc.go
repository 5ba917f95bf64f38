// Package ytdlp wraps the yt-dlp tool for metadata lookup, subtitle track
// listing, and audio/subtitle downloads.
//
// The subtitle listing is scraped from yt-dlp's human-readable --list-subs
// output, the same way the tool's own users read it: a manual section, an
// automatic captions section, and one language row per line. YouTube
// occasionally returns an empty listing for a video that does have
// captions, so ListTracks retries a few times before giving up.
package ytdlp

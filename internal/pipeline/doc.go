// Package pipeline orchestrates a single conversion run: fetch metadata,
// select a subtitle track, download audio and subtitles, convert the
// cues to LRC lyrics, and embed them into the final MP3. Runs are
// sequential and one-shot; a file lock on the source directory keeps
// concurrent invocations from clobbering each other's downloads.
package pipeline

// Package timecode models absolute time offsets from media start with
// millisecond resolution.
//
// A single value type backs the two textual grammars the pipeline deals
// with: the SRT clock form (HH:MM:SS,mmm) used on cue boundaries and the
// LRC lyric form ([MM:SS.xx]) used in embedded lyrics. Keeping both
// serializations on one type guarantees that converting between them is a
// formatting concern, never a reparse.
package timecode

// Package subtitle parses SRT-style timed text into cues and re-times them
// for extraction into a clipped audio segment.
//
// The parser is deliberately best-effort: real subtitle exports carry stray
// formatting, missing indices, and broken blocks, and one bad block must not
// abort a batch run. A block that fails to parse is dropped; the whole input
// only fails when nothing usable survives.
package subtitle

// Package main hosts the lyrebird CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the full pipeline (fetch, merge),
// the standalone pieces (subs, convert), and the supporting surfaces
// (history, status, config, test-notify). It centralizes configuration
// resolution and structured logging setup so subcommands can focus on
// user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands or
// flags here.
package main

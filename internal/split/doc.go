// Package split turns validated cue sheets into ffmpeg invocations and runs
// them.
//
// Synthesize assigns every track an output path and a stream-copy command
// bounded by its own start and the next track's start. Orchestrator then
// runs all tracks of all sheets through a bounded worker pool, tags the
// results and collects per-track failures without stopping the batch.
package split

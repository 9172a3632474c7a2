// Package ioutils provides file system and image utilities for cue-splitter.
//
// This package contains functions for:
//   - Cue file discovery and directory listing
//   - Track file naming rules
//   - Idempotent directory creation
//   - Moving source audio files next to their split tracks
//   - Cover art lookup and scaling
//
// # File Operations
//
//	// Find every cue file below the given paths
//	cues, err := ioutils.FindCueFiles([]string{"/music/rips"})
//
//	// Move an audio file, copying across devices if needed
//	err := ioutils.MoveFile(ctx, "/rips/album.flac", "/rips/CD1/album.flac")
//
// # Track Names
//
//	name := ioutils.TrackFileName("AC/DC - Back: In Black") // "AC-DC - Back- In Black"
//
// # Cover Art
//
//	svc := ioutils.NewImageService(500)
//	cover, err := svc.LoadCoverArt(ctx, "/rips/album")
package ioutils

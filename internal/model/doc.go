// Package model defines the core data structures used throughout
// cue-splitter.
//
// # CueSheet
//
// CueSheet is the parsed form of one cue file: the referenced audio file,
// the optional album title and the ordered list of tracks.
//
//	sheet := &model.CueSheet{CueFilePath: "/music/album.cue", AudioFileName: "album.flac"}
//	sheet.AudioFilePath = sheet.DefaultAudioPath()
//
// # Track
//
// Track holds one TRACK block. Start times are CueDuration values and the
// output file and ffmpeg command are filled in during command synthesis:
//
//	track := model.Track{Number: 1, Title: "Intro"}
//	track.StartTime = &model.CueDuration{Minutes: 3, Seconds: 45}
//
// # CueDuration
//
// CueDuration is the minutes/seconds/frames triple used by cue sheets,
// with 75 frames per second. It is ordered by absolute frame count.
package model

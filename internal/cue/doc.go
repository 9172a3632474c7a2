// Package cue reads cue sheets into model.CueSheet values.
//
// Reading happens in three steps:
//
//  1. Decode sniffs the text encoding of the raw bytes and converts them
//     to UTF-8. Legacy single-byte and CJK encodings are common in ripped
//     albums.
//  2. Lex splits the text into directives (keyword + remainder).
//  3. Parse folds the directives into a CueSheet.
//
// Only FILE, TRACK, TITLE, INDEX and PERFORMER are interpreted; every other
// keyword is ignored.
//
// # Usage
//
//	sheet, err := cue.ParseFile("/music/album/album.cue", cue.Options{Lossy: true})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sheet.AudioFilePath, len(sheet.Tracks))
//
// # Lossy Decoding
//
// With Options.Lossy set, byte sequences that are invalid in the detected
// encoding are dropped from the text. Without it they make decoding fail.
// Dropping keeps legacy cue sheets usable at the cost of losing characters
// in titles and artist names.
package cue

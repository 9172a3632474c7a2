// Package audio writes metadata into split tracks and generates playlists.
//
// # Tagging
//
// Use the Tagger to write tags to a freshly split file:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig(), logger)
//	err := tagger.Tag(sheet, track)
//
// MP3 files receive ID3v2 frames, FLAC files Vorbis comments. The container
// is sniffed from the file header and falls back to the extension. The
// tagger supports:
//   - Album, Album Artist
//   - Artist, Title
//   - Track Number, Disc Number
//   - Cover Art
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(sheet)
//	os.WriteFile(creator.PlaylistPath(sheet), []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
package audio

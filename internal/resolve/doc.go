// Package resolve repairs cue sheets whose FILE reference does not point at
// an existing audio file.
//
// The resolver probes every file next to the broken reference, keeps those
// whose playtime can hold the last track, and ranks them with a Levenshtein
// and a Hamming metric. The best match is offered to the user with a
// confidence-dependent default. Rejections fall through to a repair menu.
package resolve

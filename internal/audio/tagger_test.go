package audio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
	"github.com/handiism/cue-splitter/internal/model"
)

func testSheet(output string) (*model.CueSheet, model.Track) {
	track := model.Track{Number: 3, Title: "Song", Artist: "Someone", OutputFile: output}
	sheet := &model.CueSheet{
		Title:      "Album",
		Performer:  "Band",
		DiscNumber: 2,
		Tracks:     []model.Track{track},
	}
	return sheet, track
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// minimalFLAC is a stream marker followed by a single, final STREAMINFO block.
func minimalFLAC() []byte {
	data := []byte("fLaC")
	data = append(data, 0x80, 0x00, 0x00, 0x22)
	return append(data, make([]byte, 34)...)
}

func TestDetectFormat(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content []byte
		want    Format
		wantErr bool
	}{
		{"a.flac", minimalFLAC(), FormatFLAC, false},
		{"b.bin", minimalFLAC(), FormatFLAC, false},
		{"c.mp3", bytes.Repeat([]byte{0x00}, 32), FormatMP3, false},
		{"d.wav", bytes.Repeat([]byte{0x00}, 32), FormatUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, tt.content, 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := DetectFormat(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("error = %v, want ErrUnsupportedFormat", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagger_MP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "03 Someone - Song.mp3")
	if err := os.WriteFile(path, bytes.Repeat([]byte{0x00}, 64), 0o644); err != nil {
		t.Fatal(err)
	}
	sheet, track := testSheet(path)
	sheet.CoverArt = testJPEG(t)

	if err := NewTagger(nil, nil).Tag(sheet, track); err != nil {
		t.Fatalf("Tag() error = %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	checks := map[string]string{
		"TALB": "Album",
		"TPE1": "Someone",
		"TPE2": "Band",
		"TIT2": "Song",
		"TRCK": "3",
		"TPOS": "2",
	}
	for id, want := range checks {
		if got := tag.GetTextFrame(id).Text; got != want {
			t.Errorf("%s = %q, want %q", id, got, want)
		}
	}
	if pics := tag.GetFrames(tag.CommonID("Attached picture")); len(pics) != 1 {
		t.Errorf("expected 1 attached picture, got %d", len(pics))
	}
}

func TestTagger_FLAC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "03 Someone - Song.flac")
	if err := os.WriteFile(path, minimalFLAC(), 0o644); err != nil {
		t.Fatal(err)
	}
	sheet, track := testSheet(path)
	sheet.CoverArt = testJPEG(t)

	cfg := DefaultTagConfig()
	cfg.AlbumArtist = TagDoNotModify
	if err := NewTagger(cfg, nil).Tag(sheet, track); err != nil {
		t.Fatalf("Tag() error = %v", err)
	}

	file, err := flac.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var comments *flacvorbis.MetaDataBlockVorbisComment
	pictures := 0
	for _, block := range file.Meta {
		switch block.Type {
		case flac.VorbisComment:
			comments, err = flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				t.Fatal(err)
			}
		case flac.Picture:
			pictures++
		}
	}
	if comments == nil {
		t.Fatal("no vorbis comment block written")
	}
	if pictures != 1 {
		t.Errorf("expected 1 picture block, got %d", pictures)
	}

	checks := map[string]string{
		flacvorbis.FIELD_ALBUM:       "Album",
		flacvorbis.FIELD_ARTIST:      "Someone",
		flacvorbis.FIELD_TITLE:       "Song",
		flacvorbis.FIELD_TRACKNUMBER: "3",
		"DISCNUMBER":                 "2",
	}
	for key, want := range checks {
		got, err := comments.Get(key)
		if err != nil || len(got) != 1 || got[0] != want {
			t.Errorf("%s = %v (err %v), want %q", key, got, err, want)
		}
	}
	if got, _ := comments.Get("ALBUMARTIST"); len(got) != 0 {
		t.Errorf("ALBUMARTIST should be untouched, got %v", got)
	}
}

func TestTagger_SkipsUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01 Song.wav")
	content := bytes.Repeat([]byte{0x00}, 32)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	sheet, track := testSheet(path)

	if err := NewTagger(nil, nil).Tag(sheet, track); err != nil {
		t.Fatalf("Tag() error = %v", err)
	}
	after, _ := os.ReadFile(path)
	if !bytes.Equal(after, content) {
		t.Error("unsupported file should be left untouched")
	}
}

func TestTagger_Disabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01 Song.flac")
	if err := os.WriteFile(path, minimalFLAC(), 0o644); err != nil {
		t.Fatal(err)
	}
	sheet, track := testSheet(path)

	cfg := DefaultTagConfig()
	cfg.ModifyTags = false
	cfg.EmbedCoverArt = false
	if err := NewTagger(cfg, nil).Tag(sheet, track); err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(path)
	if !bytes.Equal(after, minimalFLAC()) {
		t.Error("disabled tagger should not rewrite the file")
	}
}

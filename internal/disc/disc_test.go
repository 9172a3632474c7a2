package disc

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     int
	}{
		{"cd token falls through to digits", "MyAlbum CD2.cue", 2},
		{"disc token split from number", "MyAlbum_Disc_3.cue", 3},
		{"first token numeric", "02 - MyAlbum.cue", 2},
		{"no digits anywhere", "MyAlbumDisc.cue", 1},
		{"cd token parses directly", "Album - cd4 - Live.cue", 4},
		{"disc token parses directly", "Album_disc2_remaster.cue", 2},
		{"no delimiter-separated number", "Album - Live.cue", 1},
		{"digits concatenated", "Album (1999) Live.cue", 1999},
		{"first token leading zero", "01.Album.cue", 1},
		{"signed cd token is not a disc number", "Album_cd-2_x.cue", 2},
		{"plus-signed cd token", "Album_cd+3_x.cue", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.fileName); got != tt.want {
				t.Errorf("Number(%q) = %d, want %d", tt.fileName, got, tt.want)
			}
		})
	}
}

func TestPrefixedNumber(t *testing.T) {
	tests := []struct {
		token  string
		want   int
		wantOK bool
	}{
		{"cd2", 2, true},
		{" CD07 ", 7, true},
		{"cd-1", 0, false},
		{"cd+2", 0, false},
		{"cd", 0, false},
		{"cdx", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := prefixedNumber([]string{tt.token}, "cd")
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("prefixedNumber(%q) = %d, %v, want %d, %v", tt.token, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBestDelimiter(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"a-b_c.cue", "-"},
		{"a_b_c.cue", "_"},
		{"a b.c", " "},
		{"abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			if got := bestDelimiter(tt.fileName); got != tt.want {
				t.Errorf("bestDelimiter(%q) = %q, want %q", tt.fileName, got, tt.want)
			}
		})
	}
}

func TestIsMultiDisc(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	first := write("Album CD1.cue")
	write("Album CD1.flac")
	if err := os.Mkdir(filepath.Join(dir, "extra.cue"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	multi, err := IsMultiDisc(first)
	if err != nil {
		t.Fatalf("IsMultiDisc() error = %v", err)
	}
	if multi {
		t.Fatal("single cue file reported as multi-disc")
	}

	write("Album CD2.CUE")
	multi, err = IsMultiDisc(first)
	if err != nil {
		t.Fatalf("IsMultiDisc() error = %v", err)
	}
	if !multi {
		t.Fatal("two cue files not reported as multi-disc")
	}
}

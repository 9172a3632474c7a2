package cue

import (
	"errors"
	"strings"
	"testing"
)

func TestDecode_UTF8WithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("TITLE \"Motörhead\"\n")...)

	text, err := Decode(data, false)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if text != "TITLE \"Motörhead\"\n" {
		t.Errorf("Decode() = %q", text)
	}
}

func TestDecode_LossyDropsInvalidSequences(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("TITLE \"A\xffB\"\n")...)

	text, err := Decode(data, true)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if text != "TITLE \"AB\"\n" {
		t.Errorf("Decode() = %q, want invalid byte dropped", text)
	}

	if _, err := Decode(data, false); !errors.Is(err, ErrDecode) {
		t.Errorf("strict Decode() error = %v, want ErrDecode", err)
	}
}

func TestDecode_Latin1(t *testing.T) {
	// "é" and "è" as single ISO-8859-1 bytes.
	raw := "PERFORMER \"Orchestre de la Soci\xe9t\xe9 des Concerts\"\n" +
		"TITLE \"Le caf\xe9 de la gare, \xe9t\xe9 et hiver, premi\xe8re \xe9dition\"\n" +
		"FILE \"Caf\xe9.flac\" WAVE\n" +
		"  TRACK 01 AUDIO\n" +
		"    TITLE \"La derni\xe8re chanson d'\xe9t\xe9\"\n" +
		"    INDEX 01 00:00:00\n"

	text, err := Decode([]byte(raw), true)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !strings.Contains(text, "Café.flac") {
		t.Errorf("Decode() = %q, want Café.flac", text)
	}
}

func TestDecode_Empty(t *testing.T) {
	text, err := Decode(nil, false)
	if err != nil || text != "" {
		t.Errorf("Decode(nil) = %q, %v", text, err)
	}
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"UTF-8", "ISO-8859-1", "windows-1251", "Shift_JIS", "GB-18030", "UTF-16LE", "UTF-32BE"} {
		t.Run(name, func(t *testing.T) {
			if _, err := lookupEncoding(name); err != nil {
				t.Errorf("lookupEncoding(%q) error = %v", name, err)
			}
		})
	}

	if _, err := lookupEncoding("klingon-8"); !errors.Is(err, ErrDecode) {
		t.Errorf("lookupEncoding(unknown) error = %v, want ErrDecode", err)
	}
}

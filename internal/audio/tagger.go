package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/dhowden/tag"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
	"github.com/handiism/cue-splitter/internal/logging"
	"github.com/handiism/cue-splitter/internal/model"
)

// ErrUnsupportedFormat is returned by DetectFormat for containers the
// tagger cannot write.
var ErrUnsupportedFormat = errors.New("unsupported tag container")

// Format is a tag container the Tagger can write.
type Format int

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatFLAC
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatFLAC:
		return "flac"
	default:
		return "unknown"
	}
}

// TagEditAction defines how to handle an individual tag field.
type TagEditAction int

const (
	// TagEmpty removes the field.
	TagEmpty TagEditAction = iota

	// TagModify writes the value from the cue sheet. Empty values are
	// skipped so that absent cue fields never blank out a tag.
	TagModify

	// TagDoNotModify leaves the field unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags:  true,
//	    Album:       TagModify,      // TITLE before the first TRACK
//	    Artist:      TagModify,      // track PERFORMER
//	    AlbumArtist: TagDoNotModify, // keep whatever is there
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no text fields are written.
	ModifyTags bool

	// EmbedCoverArt writes CueSheet.CoverArt as the front cover.
	EmbedCoverArt bool

	Album       TagEditAction
	Artist      TagEditAction
	AlbumArtist TagEditAction
	TrackTitle  TagEditAction
	TrackNumber TagEditAction
	DiscNumber  TagEditAction
}

// DefaultTagConfig returns a configuration that writes every field the cue
// sheet provides.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:    true,
		EmbedCoverArt: true,
		Album:         TagModify,
		Artist:        TagModify,
		AlbumArtist:   TagModify,
		TrackTitle:    TagModify,
		TrackNumber:   TagModify,
		DiscNumber:    TagModify,
	}
}

// Tagger writes metadata to split tracks: ID3v2 frames for MP3 and Vorbis
// comments for FLAC. Other containers are skipped with a warning.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig(), logger)
//	err := tagger.Tag(sheet, sheet.Tracks[0])
type Tagger struct {
	config *TagConfig
	logger *slog.Logger
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig, logger *slog.Logger) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config, logger: logging.OrNop(logger)}
}

// field is one resolved tag value.
type field struct {
	action TagEditAction
	value  string
}

// fields resolves the configured values for a track.
type fields struct {
	album, artist, albumArtist, title, track, disc field
}

func (t *Tagger) fieldsFor(sheet *model.CueSheet, track model.Track) fields {
	disc := ""
	if sheet.DiscNumber > 0 {
		disc = strconv.Itoa(sheet.DiscNumber)
	}
	return fields{
		album:       field{t.config.Album, sheet.Title},
		artist:      field{t.config.Artist, track.Artist},
		albumArtist: field{t.config.AlbumArtist, sheet.Performer},
		title:       field{t.config.TrackTitle, track.Title},
		track:       field{t.config.TrackNumber, strconv.Itoa(track.Number)},
		disc:        field{t.config.DiscNumber, disc},
	}
}

// Tag writes the sheet and track metadata to track.OutputFile.
func (t *Tagger) Tag(sheet *model.CueSheet, track model.Track) error {
	cover := t.config.EmbedCoverArt && len(sheet.CoverArt) > 0
	if !t.config.ModifyTags && !cover {
		return nil
	}

	format, err := DetectFormat(track.OutputFile)
	if errors.Is(err, ErrUnsupportedFormat) {
		t.logger.Warn("skipping tags for unsupported container", slog.String("file", track.OutputFile))
		return nil
	}
	if err != nil {
		return err
	}

	var artwork []byte
	if cover {
		artwork = sheet.CoverArt
	}

	switch format {
	case FormatMP3:
		return t.tagMP3(track.OutputFile, t.fieldsFor(sheet, track), artwork)
	default:
		return t.tagFLAC(track.OutputFile, t.fieldsFor(sheet, track), artwork)
	}
}

// DetectFormat sniffs the container of path, falling back to its extension
// when the file carries no recognisable header.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	if _, fileType, err := tag.Identify(f); err == nil {
		switch fileType {
		case tag.MP3:
			return FormatMP3, nil
		case tag.FLAC:
			return FormatFLAC, nil
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return FormatMP3, nil
	case ".flac":
		return FormatFLAC, nil
	}
	return FormatUnknown, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

func (t *Tagger) tagMP3(path string, f fields, artwork []byte) error {
	id3, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open id3 tag: %w", err)
	}
	defer id3.Close()

	if t.config.ModifyTags {
		setID3(id3, "TALB", f.album)
		setID3(id3, "TPE1", f.artist)
		setID3(id3, "TPE2", f.albumArtist)
		setID3(id3, "TIT2", f.title)
		setID3(id3, "TRCK", f.track)
		setID3(id3, "TPOS", f.disc)
	}

	if artwork != nil {
		id3.DeleteFrames(id3.CommonID("Attached picture"))
		id3.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     artwork,
		})
	}

	return id3.Save()
}

func setID3(id3 *id3v2.Tag, frameID string, f field) {
	switch f.action {
	case TagEmpty:
		id3.DeleteFrames(frameID)
	case TagModify:
		if f.value != "" {
			id3.AddTextFrame(frameID, id3v2.EncodingUTF8, f.value)
		}
	}
}

func (t *Tagger) tagFLAC(path string, f fields, artwork []byte) error {
	file, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse flac: %w", err)
	}

	if t.config.ModifyTags {
		if err := writeVorbis(file, f); err != nil {
			return err
		}
	}

	if artwork != nil {
		pic, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Cover", artwork, "image/jpeg")
		if err != nil {
			return fmt.Errorf("build picture block: %w", err)
		}
		kept := file.Meta[:0]
		for _, block := range file.Meta {
			if block.Type != flac.Picture {
				kept = append(kept, block)
			}
		}
		block := pic.Marshal()
		file.Meta = append(kept, &block)
	}

	return file.Save(path)
}

func writeVorbis(file *flac.File, f fields) error {
	index := -1
	var comments *flacvorbis.MetaDataBlockVorbisComment
	for i, block := range file.Meta {
		if block.Type != flac.VorbisComment {
			continue
		}
		parsed, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			return fmt.Errorf("parse vorbis comments: %w", err)
		}
		index, comments = i, parsed
		break
	}
	if comments == nil {
		comments = flacvorbis.New()
	}

	entries := []struct {
		key string
		f   field
	}{
		{flacvorbis.FIELD_ALBUM, f.album},
		{flacvorbis.FIELD_ARTIST, f.artist},
		{"ALBUMARTIST", f.albumArtist},
		{flacvorbis.FIELD_TITLE, f.title},
		{flacvorbis.FIELD_TRACKNUMBER, f.track},
		{"DISCNUMBER", f.disc},
	}

	replace := make(map[string]bool)
	for _, e := range entries {
		if e.f.action == TagEmpty || (e.f.action == TagModify && e.f.value != "") {
			replace[e.key] = true
		}
	}
	kept := comments.Comments[:0]
	for _, c := range comments.Comments {
		key, _, _ := strings.Cut(c, "=")
		if !replace[strings.ToUpper(key)] {
			kept = append(kept, c)
		}
	}
	comments.Comments = kept

	for _, e := range entries {
		if e.f.action != TagModify || e.f.value == "" {
			continue
		}
		if err := comments.Add(e.key, e.f.value); err != nil {
			return fmt.Errorf("add %s: %w", e.key, err)
		}
	}

	block := comments.Marshal()
	if index >= 0 {
		file.Meta[index] = &block
	} else {
		file.Meta = append(file.Meta, &block)
	}
	return nil
}

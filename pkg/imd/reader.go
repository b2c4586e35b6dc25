// file: pkg/imd/reader.go

package imd

import (
	"bytes"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// TrackSummary is a decoded track header together with its sector numbering.
type TrackSummary struct {
	TrackHeader
	Offset        int     `json:"offset"`  // file offset of the track header
	SectorNumbers []uint8 `json:"numbers"` // logical sector number per physical slot
}

// Image is the result of decoding an IMD file
type Image struct {
	Comment *Comment
	Tracks  []TrackSummary
	Store   *Store
}

// FindTrack returns the first track record for the given cylinder and head
func (img *Image) FindTrack(cylinder, head int) (*TrackSummary, bool) {
	for i := range img.Tracks {
		if img.Tracks[i].Cylinder == cylinder && img.Tracks[i].Head == head {
			return &img.Tracks[i], true
		}
	}
	return nil, false
}

// LoadFromFile reads and decodes an IMD image from a file
func LoadFromFile(filename string) (*Image, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &IOError{Op: "read", Path: filename, Err: err}
	}

	img, err := decodeBuffer(data)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = filename
		}
		return nil, err
	}
	return img, nil
}

// Load reads the whole of r and decodes it as an IMD image
func Load(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	return decodeBuffer(data)
}

// decodeBuffer unwraps a zstd frame if present before decoding
func decodeBuffer(data []byte) (*Image, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, &IOError{Op: "decompress", Err: err}
		}
		defer dec.Close()

		raw, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, &IOError{Op: "decompress", Err: err}
		}
		log.Debugf("decompressed zstd image: %d -> %d bytes", len(data), len(raw))
		data = raw
	}
	return Decode(data)
}

// Decode parses a fully buffered IMD image. Decoding starts after the first
// 0x1A byte and consumes track records until the buffer is exhausted.
func Decode(data []byte) (*Image, error) {
	end := bytes.IndexByte(data, CommentTerminator)
	if end < 0 {
		return nil, ErrNoDiskDataMarker
	}

	img := &Image{
		Comment: parseComment(data[:end]),
		Store:   NewStore(),
	}

	c := newCursor(data, end+1)
	for !c.EOF() {
		offset := c.Offset()
		header, err := readTrackHeader(c)
		if err != nil {
			return nil, err
		}
		log.Debug(header.String())

		maps, err := readSectorMaps(c, header)
		if err != nil {
			return nil, errors.Wrapf(err, "cylinder %d head %d", header.Cylinder, header.Head)
		}

		for slot := 0; slot < header.SectorCount; slot++ {
			sec, err := readSector(c, header, slot, maps.Numbering[slot])
			if err != nil {
				return nil, err
			}
			if err := img.Store.Add(sec); err != nil {
				return nil, err
			}
		}

		img.Tracks = append(img.Tracks, TrackSummary{
			TrackHeader:   header,
			Offset:        offset,
			SectorNumbers: maps.Numbering,
		})
	}

	log.Debugf("decoded %d tracks, %d sectors", len(img.Tracks), img.Store.Len())
	return img, nil
}

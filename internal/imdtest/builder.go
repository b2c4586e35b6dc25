// file: internal/imdtest/builder.go

// Package imdtest assembles IMD images in memory for tests.
package imdtest

import (
	"bytes"
	"os"
	"testing"
)

// Sector type codes as they appear in the image
const (
	Unavailable = 0
	Normal      = 1
	Compressed  = 2
	Deleted     = 3
)

// Sector is one sector record. For compressed types Data[0] is the fill byte.
type Sector struct {
	Number byte
	Type   byte
	Data   []byte
}

// Builder writes a comment, the 0x1A terminator and then track records
type Builder struct {
	buf bytes.Buffer
}

func New(comment string) *Builder {
	b := &Builder{}
	b.buf.WriteString(comment)
	b.buf.WriteByte(0x1A)
	return b
}

// Track appends a track record without cylinder or head maps
func (b *Builder) Track(mode, cyl, head, sizeCode byte, sectors ...Sector) *Builder {
	b.buf.Write([]byte{mode, cyl, head, byte(len(sectors)), sizeCode})
	for _, s := range sectors {
		b.buf.WriteByte(s.Number)
	}
	for _, s := range sectors {
		b.buf.WriteByte(s.Type)
		switch {
		case s.Type == Unavailable:
		case s.Type%2 == 0:
			b.buf.WriteByte(s.Data[0])
		default:
			b.buf.Write(s.Data)
		}
	}
	return b
}

// Raw appends bytes as they are
func (b *Builder) Raw(p ...byte) *Builder {
	b.buf.Write(p)
	return b
}

func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

// WriteFile stores the image at path
func (b *Builder) WriteFile(t testing.TB, path string) {
	t.Helper()
	if err := os.WriteFile(path, b.buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
}

func Filled(v byte, n int) []byte {
	return bytes.Repeat([]byte{v}, n)
}

// SectorData is the content FlexDisk stores in each sector: the sector number
// followed by the track number repeated.
func SectorData(track, sector int) []byte {
	data := Filled(byte(track), 256)
	data[0] = byte(sector)
	return data
}

// FlexDisk builds a double-sided FLEX disk with 256-byte sectors. Track 0 has
// phys0 sectors per side in FM, the other tracks phys1 sectors per side in MFM.
// Side 1 continues the sector numbering of side 0.
func FlexDisk(comment string, phys0, phys1, tracks int) *Builder {
	return FlexDiskWith(comment, phys0, phys1, tracks, SectorData)
}

// FlexDiskWith is FlexDisk with the sector content supplied by content
func FlexDiskWith(comment string, phys0, phys1, tracks int, content func(track, sector int) []byte) *Builder {
	b := New(comment)
	for track := 0; track < tracks; track++ {
		mode, phys := byte(5), phys1
		if track == 0 {
			mode, phys = 2, phys0
		}
		for head := 0; head < 2; head++ {
			sectors := make([]Sector, phys)
			for slot := range sectors {
				number := head*phys + slot + 1
				sectors[slot] = Sector{Number: byte(number), Type: Normal, Data: content(track, number)}
			}
			b.Track(mode, byte(track), byte(head), 1, sectors...)
		}
	}
	return b
}

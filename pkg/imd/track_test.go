// file: pkg/imd/track_test.go

package imd

import (
	"errors"
	"testing"
)

func TestReadTrackHeader(t *testing.T) {
	tests := []struct {
		raw  []byte
		want TrackHeader
	}{
		{
			raw:  []byte{0, 0, 0, 10, 0},
			want: TrackHeader{Mode: Mode500FM, SectorCount: 10, SizeCode: 0, SectorSize: 128},
		},
		{
			raw:  []byte{3, 1, 0, 18, 1},
			want: TrackHeader{Mode: Mode500MFM, Cylinder: 1, SectorCount: 18, SizeCode: 1, SectorSize: 256},
		},
		{
			raw: []byte{5, 39, 0xC1, 9, 2},
			want: TrackHeader{Mode: Mode250MFM, Cylinder: 39, Head: 1, HasCylinderMap: true,
				HasHeadMap: true, SectorCount: 9, SizeCode: 2, SectorSize: 512},
		},
		{
			raw:  []byte{2, 255, 0x40, 255, 7},
			want: TrackHeader{Mode: Mode250FM, Cylinder: 255, HasCylinderMap: true, SectorCount: 255, SizeCode: 7, SectorSize: 16384},
		},
	}

	for _, tt := range tests {
		c := newCursor(append(tt.raw, 0xFF), 0)
		got, err := readTrackHeader(c)
		if err != nil {
			t.Fatalf("header % X: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("header % X: got %+v, want %+v", tt.raw, got, tt.want)
		}
		if c.Offset() != TrackHeaderSize {
			t.Errorf("header % X: consumed %d bytes", tt.raw, c.Offset())
		}
	}
}

func TestReadTrackHeaderRejects(t *testing.T) {
	if _, err := readTrackHeader(newCursor([]byte{6, 0, 0, 0, 0}, 0)); !errors.Is(err, ErrInvalidModeValue) {
		t.Errorf("mode 6: expected ErrInvalidModeValue, got %v", err)
	}
	if _, err := readTrackHeader(newCursor([]byte{0, 0, 0, 0, 0xFF}, 0)); !errors.Is(err, ErrInvalidSectorSizeCode) {
		t.Errorf("size code 0xFF: expected ErrInvalidSectorSizeCode, got %v", err)
	}
}

func TestModeNames(t *testing.T) {
	tests := []struct {
		mode     Mode
		name     string
		encoding string
		rate     int
	}{
		{Mode500FM, "500 kbps FM", "FM", 500},
		{Mode300FM, "300 kbps FM", "FM", 300},
		{Mode250FM, "250 kbps FM", "FM", 250},
		{Mode500MFM, "500 kbps MFM", "MFM", 500},
		{Mode300MFM, "300 kbps MFM", "MFM", 300},
		{Mode250MFM, "250 kbps MFM", "MFM", 250},
	}
	for _, tt := range tests {
		if tt.mode.String() != tt.name || tt.mode.Encoding() != tt.encoding || tt.mode.DataRate() != tt.rate {
			t.Errorf("mode %d: got %s/%s/%d", tt.mode, tt.mode, tt.mode.Encoding(), tt.mode.DataRate())
		}
	}
}

func TestReadSectorMaps(t *testing.T) {
	h := TrackHeader{SectorCount: 3, HasHeadMap: true}
	c := newCursor([]byte{1, 2, 3, 0, 0, 0, 0xAA}, 0)

	maps, err := readSectorMaps(c, h)
	if err != nil {
		t.Fatal(err)
	}
	if len(maps.Numbering) != 3 || maps.Cylinder != nil || len(maps.Head) != 3 {
		t.Errorf("Unexpected maps: %+v", maps)
	}
	if c.Offset() != 6 {
		t.Errorf("Cursor at %d, want 6", c.Offset())
	}
}

// file: pkg/flex/disk_test.go

package flex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ha1tch/imdflex/pkg/imd"
)

func TestLinearizeAndSector(t *testing.T) {
	img := buildImage(t, 10, 18, 40)

	disk, err := Linearize(img, 0)
	if err != nil {
		t.Fatalf("Linearize failed: %v", err)
	}
	if len(disk.Data) != disk.Geometry.ImageSize() {
		t.Fatalf("Wrong image length %d", len(disk.Data))
	}

	tests := []struct {
		track, sector int
		want          []byte
	}{
		{0, 1, sectorData(0, 1)},
		{0, 20, sectorData(0, 20)},
		{0, 21, make([]byte, 256)},
		{1, 1, sectorData(1, 1)},
		{39, 36, sectorData(39, 36)},
	}
	for _, tt := range tests {
		got, err := disk.Sector(tt.track, tt.sector)
		if err != nil {
			t.Errorf("Sector(%d, %d): %v", tt.track, tt.sector, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Sector(%d, %d): content mismatch", tt.track, tt.sector)
		}
	}

	for _, bad := range [][2]int{{0, 0}, {0, 37}, {40, 1}, {-1, 1}, {5, 37}} {
		if _, err := disk.Sector(bad[0], bad[1]); !errors.Is(err, ErrSectorRange) {
			t.Errorf("Sector(%d, %d): expected ErrSectorRange, got %v", bad[0], bad[1], err)
		}
	}
}

func TestLinearizeTrackOverride(t *testing.T) {
	img := buildImage(t, 10, 18, 35)

	if _, err := Linearize(img, 0); err == nil {
		t.Error("Expected missing sector error for a 35 track image at 40 tracks")
	}

	disk, err := Linearize(img, 35)
	if err != nil {
		t.Fatalf("Linearize failed: %v", err)
	}
	if disk.Geometry.Tracks != 35 {
		t.Errorf("Wrong track count %d", disk.Geometry.Tracks)
	}
}

func TestDiskSIR(t *testing.T) {
	img := buildImage(t, 10, 18, 40)

	sir := make([]byte, 256)
	copy(sir[0x10:], "FLEXDISK")
	binary.BigEndian.PutUint16(sir[0x1B:], 1)
	copy(sir[0x1D:], []byte{0x05, 0x01, 0x27, 0x24})
	binary.BigEndian.PutUint16(sir[0x21:], 1256)
	copy(sir[0x23:], []byte{10, 17, 86, 0x27, 0x24})

	sec, _ := img.Store.Find(SIRTrack, SIRSector)
	sec.Data = sir

	disk, err := Linearize(img, 0)
	if err != nil {
		t.Fatal(err)
	}

	info, err := disk.SIR()
	if err != nil {
		t.Fatalf("SIR failed: %v", err)
	}

	want := SIR{
		Label:       "FLEXDISK",
		Number:      1,
		FirstFree:   Address{5, 1},
		LastFree:    Address{0x27, 0x24},
		FreeSectors: 1256,
		Month:       10,
		Day:         17,
		Year:        86,
		MaxTrack:    39,
		MaxSector:   36,
	}
	if *info != want {
		t.Errorf("got %+v, want %+v", *info, want)
	}
	if info.Date() != "10-17-86" {
		t.Errorf("Wrong date %q", info.Date())
	}
	if errs := info.Validate(disk.Geometry); len(errs) != 0 {
		t.Errorf("Unexpected validation errors: %v", errs)
	}

	info.MaxSector = 18
	info.LastFree = Address{50, 1}
	errs := info.Validate(disk.Geometry)
	if len(errs) != 2 {
		t.Fatalf("Expected 2 validation errors, got %v", errs)
	}
	var vErr *ValidationError
	if !errors.As(errs[0], &vErr) || vErr.Field != "SIR.MaxSector" {
		t.Errorf("Unexpected first error %v", errs[0])
	}
}

func TestParseSIRShort(t *testing.T) {
	if _, err := ParseSIR(make([]byte, 10)); err == nil {
		t.Error("Expected error for short SIR sector")
	}
}

func TestGeometryFromDecodedImage(t *testing.T) {
	var raw bytes.Buffer
	raw.WriteString("IMD 1.18: test\r\n\x1A")
	// track 0: two 256-byte sectors, a literal 0xAA sector and a compressed 0x00 sector
	raw.Write([]byte{3, 0, 0, 2, 1, 1, 2})
	raw.WriteByte(1)
	raw.Write(bytes.Repeat([]byte{0xAA}, 256))
	raw.Write([]byte{2, 0x00})
	// track 1: three compressed sectors
	raw.Write([]byte{3, 1, 0, 3, 1, 1, 2, 3})
	raw.Write([]byte{2, 0xE5, 2, 0xE5, 2, 0xE5})

	img, err := imd.Decode(raw.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	geom, err := GeometryOf(img)
	if err != nil {
		t.Fatal(err)
	}
	if geom.FirstTrackSectors != 4 || geom.SectorsPerTrack != 6 {
		t.Errorf("Expected 4/6 sectors per track, got %d/%d", geom.FirstTrackSectors, geom.SectorsPerTrack)
	}
	if geom.ImageSize() != 256*(6+39*6) {
		t.Errorf("Wrong image size %d", geom.ImageSize())
	}

	s1, _ := img.Store.Find(0, 1)
	s2, _ := img.Store.Find(0, 2)
	if !bytes.Equal(s1.Data, bytes.Repeat([]byte{0xAA}, 256)) || !bytes.Equal(s2.Data, make([]byte, 256)) {
		t.Error("Track 0 sector contents not decoded")
	}
}

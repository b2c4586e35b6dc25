// file: pkg/flex/disk.go

package flex

import (
	"bytes"

	"github.com/ha1tch/imdflex/internal"
	"github.com/ha1tch/imdflex/pkg/imd"
	"github.com/pkg/errors"
)

const (
	TracksPerDisk  = 40
	BytesPerSector = imd.CanonicalSectorSize
)

// Geometry is the logical layout of the flat FLEX image.
type Geometry struct {
	FirstTrackSectors int `json:"first_track_sectors"` // sectors on track 0
	SectorsPerTrack   int `json:"sectors_per_track"`   // sectors on every later track
	Tracks            int `json:"tracks"`
	SectorSize        int `json:"sector_size"`
}

// GeometryOf samples track 0 and track 1 on head 0. The physical counts are
// doubled to give the logical sectors per track.
func GeometryOf(img *imd.Image) (Geometry, error) {
	track0, ok := img.FindTrack(0, 0)
	if !ok {
		return Geometry{}, &MissingGeometryError{Track: 0}
	}
	track1, ok := img.FindTrack(1, 0)
	if !ok {
		return Geometry{}, &MissingGeometryError{Track: 1}
	}

	return Geometry{
		FirstTrackSectors: track0.SectorCount * 2,
		SectorsPerTrack:   track1.SectorCount * 2,
		Tracks:            TracksPerDisk,
		SectorSize:        BytesPerSector,
	}, nil
}

// FirstTrackSlots is the number of sector slots track 0 occupies in the
// output. A short track 0 is padded to the size of the other tracks.
func (g Geometry) FirstTrackSlots() int {
	return max(g.FirstTrackSectors, g.SectorsPerTrack)
}

// ImageSize returns the byte length of the linearized image
func (g Geometry) ImageSize() int {
	if g.Tracks <= 0 {
		return 0
	}
	return g.SectorSize * (g.FirstTrackSlots() + (g.Tracks-1)*g.SectorsPerTrack)
}

// Offset returns the byte offset of a 1-based sector in the linearized image
func (g Geometry) Offset(track, sector int) (int, error) {
	limit := g.SectorsPerTrack
	if track == 0 {
		limit = g.FirstTrackSlots()
	}
	if track < 0 || track >= g.Tracks || sector < 1 || sector > limit {
		return 0, errors.Wrapf(ErrSectorRange, "track %d sector %d", track, sector)
	}
	return internal.LinearOffset(track, sector, g.FirstTrackSlots(), g.SectorsPerTrack, g.SectorSize), nil
}

// Disk is a linearized FLEX image held in memory
type Disk struct {
	Geometry Geometry
	Data     []byte
}

// Linearize decodes the geometry of img and assembles the full image in memory
func Linearize(img *imd.Image, tracks int) (*Disk, error) {
	geom, err := GeometryOf(img)
	if err != nil {
		return nil, err
	}
	if tracks > 0 {
		geom.Tracks = tracks
	}

	var buf bytes.Buffer
	buf.Grow(geom.ImageSize())
	if _, err := NewLinearizer(img.Store, geom).WriteTo(&buf); err != nil {
		return nil, err
	}

	return &Disk{Geometry: geom, Data: buf.Bytes()}, nil
}

// Sector returns the content of one sector of the linearized image
func (d *Disk) Sector(track, sector int) ([]byte, error) {
	offset, err := d.Geometry.Offset(track, sector)
	if err != nil {
		return nil, err
	}
	if offset+d.Geometry.SectorSize > len(d.Data) {
		return nil, errors.Wrapf(ErrSectorRange, "track %d sector %d beyond image end", track, sector)
	}
	return d.Data[offset : offset+d.Geometry.SectorSize], nil
}

// file: pkg/imd/track.go

package imd

import (
	"encoding/binary"
	"fmt"

	"github.com/go-restruct/restruct"
	"github.com/pkg/errors"
)

const (
	TrackHeaderSize = 5
	MaxSizeCode     = 7

	headMask        = 0x01
	cylinderMapFlag = 0x40
	headMapFlag     = 0x80
)

// Mode is the recording mode and data rate of a track.
type Mode uint8

const (
	Mode500FM Mode = iota
	Mode300FM
	Mode250FM
	Mode500MFM
	Mode300MFM
	Mode250MFM
)

var modeNames = [...]string{
	"500 kbps FM",
	"300 kbps FM",
	"250 kbps FM",
	"500 kbps MFM",
	"300 kbps MFM",
	"250 kbps MFM",
}

func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode %d", uint8(m))
	}
	return modeNames[m]
}

// Encoding returns "FM" or "MFM".
func (m Mode) Encoding() string {
	if m >= Mode500MFM {
		return "MFM"
	}
	return "FM"
}

// DataRate returns the data rate in kbps.
func (m Mode) DataRate() int {
	switch m % 3 {
	case 0:
		return 500
	case 1:
		return 300
	default:
		return 250
	}
}

// rawTrackHeader is the on-disk layout of a track record header
type rawTrackHeader struct {
	Mode        uint8
	Cylinder    uint8
	Head        uint8 // bit 0 head, bit 6 cylinder map, bit 7 head map
	SectorCount uint8
	SizeCode    uint8 // sector size = 128 << SizeCode
}

// TrackHeader describes one track/head record
type TrackHeader struct {
	Mode           Mode `json:"mode"`
	Cylinder       int  `json:"cylinder"`
	Head           int  `json:"head"`
	HasCylinderMap bool `json:"has_cylinder_map"`
	HasHeadMap     bool `json:"has_head_map"`
	SectorCount    int  `json:"sectors"`
	SizeCode       int  `json:"size_code"`
	SectorSize     int  `json:"sector_size"`
}

func (h TrackHeader) String() string {
	return fmt.Sprintf("Mode : %s Cylinder %d Head %d #Sectors %d Sector Size %d",
		h.Mode, h.Cylinder, h.Head, h.SectorCount, h.SectorSize)
}

// readTrackHeader consumes exactly TrackHeaderSize bytes
func readTrackHeader(c *cursor) (TrackHeader, error) {
	offset := c.Offset()
	b, err := c.Bytes(TrackHeaderSize)
	if err != nil {
		return TrackHeader{}, errors.Wrap(err, "track header")
	}

	var raw rawTrackHeader
	if err := restruct.Unpack(b, binary.LittleEndian, &raw); err != nil {
		return TrackHeader{}, errors.Wrapf(err, "unpack track header at offset %d", offset)
	}

	mode := Mode(raw.Mode)
	if !mode.Valid() {
		return TrackHeader{}, errors.Wrapf(ErrInvalidModeValue, "mode %d at offset %d", raw.Mode, offset)
	}
	if raw.SizeCode > MaxSizeCode {
		return TrackHeader{}, errors.Wrapf(ErrInvalidSectorSizeCode, "size code %d at offset %d", raw.SizeCode, offset+4)
	}

	return TrackHeader{
		Mode:           mode,
		Cylinder:       int(raw.Cylinder),
		Head:           int(raw.Head & headMask),
		HasCylinderMap: raw.Head&cylinderMapFlag != 0,
		HasHeadMap:     raw.Head&headMapFlag != 0,
		SectorCount:    int(raw.SectorCount),
		SizeCode:       int(raw.SizeCode),
		SectorSize:     128 << raw.SizeCode,
	}, nil
}

// SectorMaps holds the per-track maps that follow a header
type SectorMaps struct {
	Numbering []uint8 // physical slot -> logical sector number
	Cylinder  []uint8 // optional
	Head      []uint8 // optional
}

// readSectorMaps consumes the numbering map and, when flagged, the cylinder and
// head maps, in that order.
func readSectorMaps(c *cursor, h TrackHeader) (SectorMaps, error) {
	var maps SectorMaps

	numbering, err := c.Bytes(h.SectorCount)
	if err != nil {
		return maps, errors.Wrap(err, "sector numbering map")
	}
	maps.Numbering = append([]uint8(nil), numbering...)

	if h.HasCylinderMap {
		cyl, err := c.Bytes(h.SectorCount)
		if err != nil {
			return maps, errors.Wrap(err, "sector cylinder map")
		}
		maps.Cylinder = append([]uint8(nil), cyl...)
	}

	if h.HasHeadMap {
		head, err := c.Bytes(h.SectorCount)
		if err != nil {
			return maps, errors.Wrap(err, "sector head map")
		}
		maps.Head = append([]uint8(nil), head...)
	}

	return maps, nil
}

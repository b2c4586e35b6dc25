// file: pkg/imd/sector.go

package imd

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CanonicalSectorSize is the size every sector is normalised to on output.
const CanonicalSectorSize = 256

// TypeCode is the sector data record type that precedes each payload.
type TypeCode uint8

const (
	TypeUnavailable TypeCode = iota
	TypeNormal
	TypeNormalCompressed
	TypeDeleted
	TypeDeletedCompressed
	TypeError
	TypeErrorCompressed
	TypeDeletedError
	TypeDeletedErrorCompressed
)

func (t TypeCode) Valid() bool {
	return t <= TypeDeletedErrorCompressed
}

func (t TypeCode) Unavailable() bool {
	return t == TypeUnavailable
}

// Compressed reports whether the payload is a single fill byte.
func (t TypeCode) Compressed() bool {
	return t != TypeUnavailable && t%2 == 0
}

// Deleted reports a deleted-data address mark (codes 3, 4, 7, 8).
func (t TypeCode) Deleted() bool {
	return t != TypeUnavailable && (t-1)&0x02 != 0
}

// DataError reports a sector read with a data error (codes 5 to 8).
func (t TypeCode) DataError() bool {
	return t >= TypeError
}

// Sector is one decoded sector, keyed by track and logical sector number.
type Sector struct {
	Track  int      // cylinder from the track header
	Head   int      // head from the track header
	Number int      // logical sector number from the numbering map
	Slot   int      // physical position within the track
	Type   TypeCode // data record type
	Fill   byte     // fill value for compressed sectors
	Data   []byte
}

// Status returns the flags carried by the type code, e.g. "deleted,error".
func (s *Sector) Status() string {
	var flags []string
	if s.Type.Unavailable() {
		flags = append(flags, "unavailable")
	}
	if s.Type.Compressed() {
		flags = append(flags, "compressed")
	}
	if s.Type.Deleted() {
		flags = append(flags, "deleted")
	}
	if s.Type.DataError() {
		flags = append(flags, "error")
	}
	if len(flags) == 0 {
		return "normal"
	}
	return strings.Join(flags, ",")
}

// Canonical returns the sector content resized to size bytes, truncating
// longer payloads and zero-padding shorter ones.
func (s *Sector) Canonical(size int) []byte {
	if len(s.Data) == size {
		return s.Data
	}
	out := make([]byte, size)
	copy(out, s.Data)
	return out
}

// readSector decodes the type code and payload for one physical slot
func readSector(c *cursor, h TrackHeader, slot int, number uint8) (*Sector, error) {
	offset := c.Offset()
	code, err := c.Byte()
	if err != nil {
		return nil, errors.Wrapf(err, "sector type for cylinder %d slot %d", h.Cylinder, slot)
	}

	sec := &Sector{
		Track:  h.Cylinder,
		Head:   h.Head,
		Number: int(number),
		Slot:   slot,
		Type:   TypeCode(code),
	}

	switch {
	case !sec.Type.Valid():
		return nil, errors.Wrapf(ErrInvalidSectorTypeCode, "type %d at offset %d", code, offset)

	case sec.Type.Unavailable():
		sec.Data = make([]byte, CanonicalSectorSize)

	case sec.Type.Compressed():
		fill, err := c.Byte()
		if err != nil {
			return nil, errors.Wrapf(err, "fill byte for cylinder %d sector %d", h.Cylinder, number)
		}
		sec.Fill = fill
		sec.Data = bytes.Repeat([]byte{fill}, CanonicalSectorSize)

	default:
		payload, err := c.Bytes(h.SectorSize)
		if err != nil {
			return nil, errors.Wrapf(err, "data for cylinder %d sector %d", h.Cylinder, number)
		}
		sec.Data = append([]byte(nil), payload...)
	}

	if sec.Type.Compressed() {
		log.Debugf("Physical sector# %d Logical sector# %d SectorDataType: %d Compressed data %02X",
			slot, number, code, sec.Fill)
	} else {
		log.Debugf("Physical sector# %d Logical sector# %d SectorDataType: %d", slot, number, code)
	}

	return sec, nil
}

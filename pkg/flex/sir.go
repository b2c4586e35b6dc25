// file: pkg/flex/sir.go

package flex

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/go-restruct/restruct"
	"github.com/pkg/errors"
)

const (
	SIRTrack  = 0
	SIRSector = 3
	sirSize   = 0x28
)

// rawSIR is the System Information Record layout at track 0 sector 3
type rawSIR struct {
	Reserved        [16]byte
	Label           [11]byte
	Number          uint16 // big-endian, as the 6809 stores it
	FirstFreeTrack  uint8
	FirstFreeSector uint8
	LastFreeTrack   uint8
	LastFreeSector  uint8
	FreeSectors     uint16
	Month           uint8
	Day             uint8
	Year            uint8
	MaxTrack        uint8
	MaxSector       uint8
}

// Address is a FLEX track/sector link.
type Address struct {
	Track  int `json:"track"`
	Sector int `json:"sector"`
}

func (a Address) String() string {
	return fmt.Sprintf("%02X/%02X", a.Track, a.Sector)
}

// SIR describes the FLEX volume
type SIR struct {
	Label       string  `json:"label"`
	Number      int     `json:"number"`
	FirstFree   Address `json:"first_free"`
	LastFree    Address `json:"last_free"`
	FreeSectors int     `json:"free_sectors"`
	Month       int     `json:"month"`
	Day         int     `json:"day"`
	Year        int     `json:"year"`
	MaxTrack    int     `json:"max_track"`
	MaxSector   int     `json:"max_sector"`
}

// Date formats the creation date the way FLEX CAT prints it
func (s *SIR) Date() string {
	return fmt.Sprintf("%02d-%02d-%02d", s.Month, s.Day, s.Year)
}

// ParseSIR decodes a System Information Record sector
func ParseSIR(sector []byte) (*SIR, error) {
	if len(sector) < sirSize {
		return nil, errors.Errorf("SIR sector too short: %d bytes", len(sector))
	}

	var raw rawSIR
	if err := restruct.Unpack(sector[:sirSize], binary.BigEndian, &raw); err != nil {
		return nil, errors.Wrap(err, "unpack SIR")
	}

	return &SIR{
		Label:       strings.TrimRight(string(raw.Label[:]), "\x00 "),
		Number:      int(raw.Number),
		FirstFree:   Address{int(raw.FirstFreeTrack), int(raw.FirstFreeSector)},
		LastFree:    Address{int(raw.LastFreeTrack), int(raw.LastFreeSector)},
		FreeSectors: int(raw.FreeSectors),
		Month:       int(raw.Month),
		Day:         int(raw.Day),
		Year:        int(raw.Year),
		MaxTrack:    int(raw.MaxTrack),
		MaxSector:   int(raw.MaxSector),
	}, nil
}

// SIR reads the System Information Record of the disk
func (d *Disk) SIR() (*SIR, error) {
	sector, err := d.Sector(SIRTrack, SIRSector)
	if err != nil {
		return nil, err
	}
	return ParseSIR(sector)
}

// Validate compares the SIR with the linearized geometry
func (s *SIR) Validate(g Geometry) []error {
	var errs []error

	if s.MaxTrack != g.Tracks-1 {
		errs = append(errs, &ValidationError{
			Field:   "SIR.MaxTrack",
			Message: fmt.Sprintf("expected %d, got %d", g.Tracks-1, s.MaxTrack),
		})
	}

	if s.MaxSector != g.SectorsPerTrack {
		errs = append(errs, &ValidationError{
			Field:   "SIR.MaxSector",
			Message: fmt.Sprintf("expected %d, got %d", g.SectorsPerTrack, s.MaxSector),
		})
	}

	total := g.FirstTrackSlots() + (g.Tracks-1)*g.SectorsPerTrack
	if s.FreeSectors > total {
		errs = append(errs, &ValidationError{
			Field:   "SIR.FreeSectors",
			Message: fmt.Sprintf("%d free sectors on a %d sector disk", s.FreeSectors, total),
		})
	}

	links := []struct {
		field string
		addr  Address
	}{
		{"SIR.FirstFree", s.FirstFree},
		{"SIR.LastFree", s.LastFree},
	}
	for _, link := range links {
		if link.addr == (Address{}) {
			continue // full disk
		}
		if _, err := g.Offset(link.addr.Track, link.addr.Sector); err != nil {
			errs = append(errs, &ValidationError{
				Field:   link.field,
				Message: fmt.Sprintf("%s outside disk", link.addr),
			})
		}
	}

	return errs
}

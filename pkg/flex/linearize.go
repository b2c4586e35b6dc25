// file: pkg/flex/linearize.go

package flex

import (
	"io"

	"github.com/ha1tch/imdflex/pkg/imd"
	log "github.com/sirupsen/logrus"
)

// Linearizer drains a sector store into the flat FLEX sector order:
// track 0 sectors 1..FirstTrackSectors, zero sectors up to SectorsPerTrack,
// then tracks 1..Tracks-1 sectors 1..SectorsPerTrack.
type Linearizer struct {
	store *imd.Store
	geom  Geometry
}

// NewLinearizer creates a linearizer over a fully decoded store
func NewLinearizer(store *imd.Store, geom Geometry) *Linearizer {
	return &Linearizer{store: store, geom: geom}
}

// Geometry returns the layout the linearizer writes
func (l *Linearizer) Geometry() Geometry {
	return l.geom
}

// Check verifies every sector in the output range is present in the store.
func (l *Linearizer) Check() error {
	for sector := 1; sector <= l.geom.FirstTrackSectors; sector++ {
		if _, ok := l.store.Find(0, sector); !ok {
			return &MissingSectorError{Track: 0, Sector: sector}
		}
	}
	for track := 1; track < l.geom.Tracks; track++ {
		for sector := 1; sector <= l.geom.SectorsPerTrack; sector++ {
			if _, ok := l.store.Find(track, sector); !ok {
				return &MissingSectorError{Track: track, Sector: sector}
			}
		}
	}
	return nil
}

// WriteTo writes the linearized image to w. The store is checked before the
// first byte is written, so an incomplete image produces no output.
func (l *Linearizer) WriteTo(w io.Writer) (int64, error) {
	if err := l.Check(); err != nil {
		return 0, err
	}

	var written int64
	emit := func(p []byte) error {
		n, err := w.Write(p)
		written += int64(n)
		if err != nil {
			return &imd.IOError{Op: "write", Err: err}
		}
		return nil
	}

	size := l.geom.SectorSize

	sector := 1
	for ; sector <= l.geom.FirstTrackSectors; sector++ {
		sec, _ := l.store.Find(0, sector)
		if err := emit(sec.Canonical(size)); err != nil {
			return written, err
		}
	}

	if sector <= l.geom.SectorsPerTrack {
		log.Debugf("padding track 0 with %d empty sectors", l.geom.SectorsPerTrack-sector+1)
	}
	blank := make([]byte, size)
	for ; sector <= l.geom.SectorsPerTrack; sector++ {
		if err := emit(blank); err != nil {
			return written, err
		}
	}

	for track := 1; track < l.geom.Tracks; track++ {
		for sector := 1; sector <= l.geom.SectorsPerTrack; sector++ {
			sec, _ := l.store.Find(track, sector)
			if err := emit(sec.Canonical(size)); err != nil {
				return written, err
			}
		}
	}

	log.Debugf("linearized %d bytes (%d tracks, %d/%d sectors per track)",
		written, l.geom.Tracks, l.geom.FirstTrackSectors, l.geom.SectorsPerTrack)
	return written, nil
}

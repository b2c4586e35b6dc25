// file: pkg/imd/store.go

package imd

import (
	"sort"

	"github.com/ha1tch/imdflex/internal"
	"github.com/pkg/errors"
)

// Store maps (track, logical sector) to decoded sectors. It is filled by a single
// decode pass and only read afterwards, so it carries no locking.
type Store struct {
	sectors map[uint16]*Sector
	order   []uint16
}

// NewStore creates an empty sector store
func NewStore() *Store {
	return &Store{sectors: make(map[uint16]*Sector)}
}

// Add inserts a sector. A second sector with the same key is rejected.
func (s *Store) Add(sec *Sector) error {
	key := internal.SectorKey(sec.Track, sec.Number)
	if prev, ok := s.sectors[key]; ok {
		return errors.Wrapf(ErrDuplicateSector, "track %d sector %d (head %d slot %d, first seen head %d slot %d)",
			sec.Track, sec.Number, sec.Head, sec.Slot, prev.Head, prev.Slot)
	}
	s.sectors[key] = sec
	s.order = append(s.order, key)
	return nil
}

// Find looks up a sector by track and logical sector number
func (s *Store) Find(track, sector int) (*Sector, bool) {
	if track < 0 || track > 0xFF || sector < 0 || sector > 0xFF {
		return nil, false
	}
	sec, ok := s.sectors[internal.SectorKey(track, sector)]
	return sec, ok
}

func (s *Store) Len() int {
	return len(s.sectors)
}

// Sectors returns all sectors in decode order.
func (s *Store) Sectors() []*Sector {
	out := make([]*Sector, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.sectors[key])
	}
	return out
}

// SortedSectors returns all sectors ordered by track, then logical sector.
func (s *Store) SortedSectors() []*Sector {
	keys := append([]uint16(nil), s.order...)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]*Sector, 0, len(keys))
	for _, key := range keys {
		out = append(out, s.sectors[key])
	}
	return out
}

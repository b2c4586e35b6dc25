// file: internal/sector.go

package internal

// SectorKey packs a track and logical sector number into a single lookup key.
func SectorKey(track, sector int) uint16 {
	return uint16(track&0xFF)<<8 | uint16(sector&0xFF)
}

// SplitSectorKey is the inverse of SectorKey.
func SplitSectorKey(key uint16) (track, sector int) {
	return int(key >> 8), int(key & 0xFF)
}

// LinearOffset returns the byte offset of a 1-based logical sector within a flat
// image whose first track holds firstTrack sectors and every later track holds
// sectorsPerTrack sectors.
func LinearOffset(track, sector, firstTrack, sectorsPerTrack, sectorSize int) int {
	if track == 0 {
		return (sector - 1) * sectorSize
	}
	return (firstTrack + (track-1)*sectorsPerTrack + sector - 1) * sectorSize
}

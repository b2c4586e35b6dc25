// file: cmd/list/list.go

package list

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ha1tch/imdflex/pkg/imd"
)

// SectorEntry represents a sector in the listing
type SectorEntry struct {
	Track  int    `json:"track"`
	Head   int    `json:"head"`
	Sector int    `json:"sector"`
	Slot   int    `json:"slot"`
	Type   int    `json:"type"`
	Status string `json:"status"`
	Size   int    `json:"size"`
	Fill   *byte  `json:"fill,omitempty"`
}

// ListOptions configures the sector listing
type ListOptions struct {
	ImagePath string // Path to the image, shown in the header
	JSON      bool   // Output in JSON format
	Sort      string // Sort order: track, type, decode
	Reverse   bool   // Reverse sort order
	Track     int    // Only list this track, -1 for all
	Flagged   bool   // Only list deleted, error or unavailable sectors
	Quiet     bool   // Suppress non-error output
}

// DefaultListOptions returns default options for List
func DefaultListOptions() *ListOptions {
	return &ListOptions{
		JSON:    false,
		Sort:    "track",
		Reverse: false,
		Track:   -1,
		Flagged: false,
		Quiet:   false,
	}
}

// List displays the sectors of an IMD image
func List(imdPath string, opts *ListOptions) error {
	// Validate options
	if opts == nil {
		opts = DefaultListOptions()
	}
	opts.ImagePath = imdPath

	switch strings.ToLower(opts.Sort) {
	case "", "track", "type", "decode":
	default:
		return fmt.Errorf("unknown sort order: %s", opts.Sort)
	}

	// Validate image exists
	if _, err := os.Stat(imdPath); os.IsNotExist(err) {
		return fmt.Errorf("image does not exist: %w", err)
	}

	img, err := imd.LoadFromFile(imdPath)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	sectors := Entries(img, opts)

	// Output listing
	if opts.JSON {
		return outputJSON(sectors)
	}
	return outputTable(sectors, opts)
}

// Entries builds the filtered and sorted sector listing
func Entries(img *imd.Image, opts *ListOptions) []SectorEntry {
	if opts == nil {
		opts = DefaultListOptions()
	}

	var sectors []SectorEntry
	for _, sec := range img.Store.Sectors() {
		if shouldIncludeSector(sec, opts) {
			sectors = append(sectors, sectorEntry(sec))
		}
	}

	sortSectors(sectors, opts)
	return sectors
}

func shouldIncludeSector(sec *imd.Sector, opts *ListOptions) bool {
	if opts.Track >= 0 && sec.Track != opts.Track {
		return false
	}
	if opts.Flagged && !(sec.Type.Unavailable() || sec.Type.Deleted() || sec.Type.DataError()) {
		return false
	}
	return true
}

func sectorEntry(sec *imd.Sector) SectorEntry {
	entry := SectorEntry{
		Track:  sec.Track,
		Head:   sec.Head,
		Sector: sec.Number,
		Slot:   sec.Slot,
		Type:   int(sec.Type),
		Status: sec.Status(),
		Size:   len(sec.Data),
	}
	if sec.Type.Compressed() {
		fill := sec.Fill
		entry.Fill = &fill
	}
	return entry
}

func sortSectors(sectors []SectorEntry, opts *ListOptions) {
	byTrack := func(a, b SectorEntry) bool {
		if a.Track != b.Track {
			return a.Track < b.Track
		}
		return a.Sector < b.Sector
	}

	var less func(a, b SectorEntry) bool
	switch strings.ToLower(opts.Sort) {
	case "type":
		less = func(a, b SectorEntry) bool {
			if a.Type != b.Type {
				return a.Type < b.Type
			}
			return byTrack(a, b)
		}
	case "decode":
		// keep decode order
	default: // "track"
		less = byTrack
	}

	if less != nil {
		sort.SliceStable(sectors, func(i, j int) bool {
			return less(sectors[i], sectors[j])
		})
	}
	if opts.Reverse {
		for i, j := 0, len(sectors)-1; i < j; i, j = i+1, j-1 {
			sectors[i], sectors[j] = sectors[j], sectors[i]
		}
	}
}

func outputJSON(sectors []SectorEntry) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sectors)
}

func outputTable(sectors []SectorEntry, opts *ListOptions) error {
	if len(sectors) == 0 {
		if !opts.Quiet {
			fmt.Println("No sectors found")
		}
		return nil
	}

	w := os.Stdout
	if !opts.Quiet {
		fmt.Fprintf(w, "\n Sectors of %s\n\n", opts.ImagePath)
	}
	fmt.Fprintln(w, "Track Head Sector Slot Type  Size  Status")
	fmt.Fprintln(w, "----- ---- ------ ---- ----  ----  ------")

	var flagged int
	for _, sec := range sectors {
		status := sec.Status
		if sec.Fill != nil {
			status = fmt.Sprintf("%s (fill %02X)", status, *sec.Fill)
		}
		fmt.Fprintf(w, "%5d %4d %6d %4d %4d %5d  %s\n",
			sec.Track, sec.Head, sec.Sector, sec.Slot, sec.Type, sec.Size, status)
		if sec.Status != "normal" && sec.Status != "compressed" {
			flagged++
		}
	}

	if !opts.Quiet {
		fmt.Fprintf(w, "\n    %d sector(s), %d flagged\n", len(sectors), flagged)
	}

	return nil
}

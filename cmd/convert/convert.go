// file: cmd/convert/convert.go

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/ha1tch/imdflex/pkg/flex"
	"github.com/ha1tch/imdflex/pkg/imd"
)

// ConvertOptions configures the conversion
type ConvertOptions struct {
	Tracks int  // Output track count, 0 for the FLEX default
	Force  bool // Overwrite existing file
	Verify bool // Check the written file size against the geometry
	Quiet  bool // Suppress non-error output
}

// DefaultConvertOptions returns default options for Convert
func DefaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		Tracks: flex.TracksPerDisk,
		Force:  false,
		Verify: true,
		Quiet:  false,
	}
}

// Convert decodes an IMD image and writes the linearized FLEX sector image
func Convert(imdPath, outPath string, opts *ConvertOptions) error {
	// Validate options
	if opts == nil {
		opts = DefaultConvertOptions()
	}

	// Clean and validate path
	outPath = filepath.Clean(outPath)

	// Check if file exists
	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("file already exists: %s (use force to overwrite)", outPath)
		}
	}

	// Decode the whole image before any output is created
	img, err := imd.LoadFromFile(imdPath)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	log.Infof("decoded %s: %d tracks, %d sectors", imdPath, len(img.Tracks), img.Store.Len())

	geom, err := flex.GeometryOf(img)
	if err != nil {
		return fmt.Errorf("failed to determine geometry: %w", err)
	}
	if opts.Tracks > 0 {
		geom.Tracks = opts.Tracks
	}
	log.Infof("geometry: track 0 %d sectors, tracks 1-%d %d sectors",
		geom.FirstTrackSectors, geom.Tracks-1, geom.SectorsPerTrack)

	// Ensure directory exists
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", &imd.IOError{Op: "create", Path: dir, Err: err})
		}
	}

	written, err := flex.SaveToFile(outPath, flex.NewLinearizer(img.Store, geom))
	if err != nil {
		return fmt.Errorf("failed to write disk image: %w", err)
	}

	// Verify the created image
	if opts.Verify {
		if err := verifyDiskImage(outPath, geom); err != nil {
			// Clean up invalid file
			os.Remove(outPath)
			return fmt.Errorf("disk image verification failed: %w", err)
		}
	}

	if !opts.Quiet {
		fmt.Printf("Converted %s to %s (%d bytes, %d tracks)\n", imdPath, outPath, written, geom.Tracks)
	}

	return nil
}

// verifyDiskImage checks the written file has the size the geometry implies
func verifyDiskImage(path string, geom flex.Geometry) error {
	stat, err := os.Stat(path)
	if err != nil {
		return &imd.IOError{Op: "stat", Path: path, Err: err}
	}
	if stat.Size() != int64(geom.ImageSize()) {
		return fmt.Errorf("expected %d bytes, found %d", geom.ImageSize(), stat.Size())
	}
	return nil
}

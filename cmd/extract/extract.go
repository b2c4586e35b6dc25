// file: cmd/extract/extract.go

package extract

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/ha1tch/imdflex/pkg/flex"
	"github.com/ha1tch/imdflex/pkg/imd"
)

// ExtractOptions configures the sector extraction
type ExtractOptions struct {
	Output    string    // File to write the sector to, empty for stdout
	Hex       bool      // Write a hex dump instead of raw bytes
	Linear    bool      // Address the linearized image instead of the decoded sector
	Overwrite bool      // Allow overwriting existing files
	Quiet     bool      // Suppress non-error output
	Stdout    io.Writer // Destination when Output is empty
}

// DefaultExtractOptions returns default options for Extract
func DefaultExtractOptions() *ExtractOptions {
	return &ExtractOptions{
		Output:    "",
		Hex:       false,
		Linear:    false,
		Overwrite: false,
		Quiet:     false,
		Stdout:    os.Stdout,
	}
}

// Extract copies one sector of an IMD image to a file or stdout
func Extract(imdPath string, track, sector int, opts *ExtractOptions) error {
	// Validate options
	if opts == nil {
		opts = DefaultExtractOptions()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	// Validate image exists
	if _, err := os.Stat(imdPath); os.IsNotExist(err) {
		return fmt.Errorf("image does not exist: %w", err)
	}

	// Check if output file exists
	if opts.Output != "" && !opts.Overwrite {
		if _, err := os.Stat(opts.Output); err == nil {
			return fmt.Errorf("output file already exists: %s (use overwrite to replace)", opts.Output)
		}
	}

	img, err := imd.LoadFromFile(imdPath)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	data, err := ReadSector(img, track, sector, opts.Linear)
	if err != nil {
		return err
	}
	log.Infof("extracting track %d sector %d (%d bytes)", track, sector, len(data))

	if opts.Hex {
		data = []byte(hex.Dump(data))
	}

	if opts.Output == "" {
		if _, err := opts.Stdout.Write(data); err != nil {
			return &imd.IOError{Op: "write", Err: err}
		}
		return nil
	}

	// Validate/create output directory
	if dir := filepath.Dir(opts.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(opts.Output, data, 0644); err != nil {
		// Clean up partial output file on error
		os.Remove(opts.Output)
		return fmt.Errorf("failed to extract sector: %w", &imd.IOError{Op: "write", Path: opts.Output, Err: err})
	}

	if !opts.Quiet {
		fmt.Printf("Extracted track %d sector %d to %s\n", track, sector, opts.Output)
	}

	return nil
}

// ReadSector returns the content of one sector. Without linear the decoded
// sector is returned at its recorded size; with linear the sector is read
// from the 256-byte FLEX image, including the padding slots of track 0.
func ReadSector(img *imd.Image, track, sector int, linear bool) ([]byte, error) {
	if !linear {
		sec, ok := img.Store.Find(track, sector)
		if !ok {
			return nil, &flex.MissingSectorError{Track: track, Sector: sector}
		}
		return sec.Data, nil
	}

	disk, err := flex.Linearize(img, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to linearize image: %w", err)
	}
	return disk.Sector(track, sector)
}

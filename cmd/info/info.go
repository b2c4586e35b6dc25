// file: cmd/info/info.go

package info

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ha1tch/imdflex/pkg/flex"
	"github.com/ha1tch/imdflex/pkg/imd"
)

// ImageInfo represents image information in a structured format
type ImageInfo struct {
	Path        string             `json:"path"`
	Comment     *imd.Comment       `json:"comment"`
	Tracks      int                `json:"tracks"`
	Sectors     int                `json:"sectors"`
	Unavailable int                `json:"unavailable"`
	Deleted     int                `json:"deleted"`
	DataErrors  int                `json:"data_errors"`
	Geometry    *flex.Geometry     `json:"geometry,omitempty"`
	ImageSize   int                `json:"image_size,omitempty"`
	SIR         *flex.SIR          `json:"sir,omitempty"`
	TrackList   []imd.TrackSummary `json:"track_list,omitempty"`
	Modified    time.Time          `json:"modified_time,omitempty"`
	Validation  []string           `json:"validation_issues,omitempty"`
}

// InfoOptions configures the information display
type InfoOptions struct {
	JSON     bool // Output in JSON format
	Verbose  bool // Show the per-track summary
	Validate bool // Check the FLEX system information record
	Quiet    bool // Suppress non-error output
}

// DefaultInfoOptions returns default options for Info
func DefaultInfoOptions() *InfoOptions {
	return &InfoOptions{
		JSON:     false,
		Verbose:  false,
		Validate: true,
		Quiet:    false,
	}
}

// Info displays information about an IMD image
func Info(imdPath string, opts *InfoOptions) error {
	// Validate options
	if opts == nil {
		opts = DefaultInfoOptions()
	}

	// Validate image exists
	if _, err := os.Stat(imdPath); os.IsNotExist(err) {
		return fmt.Errorf("image does not exist: %w", err)
	}

	img, err := imd.LoadFromFile(imdPath)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	info := Collect(imdPath, img, opts)

	// Output information
	if opts.JSON {
		return outputJSON(info)
	}
	return outputText(info, opts)
}

// Collect gathers the information shown by Info from a decoded image
func Collect(imdPath string, img *imd.Image, opts *InfoOptions) *ImageInfo {
	if opts == nil {
		opts = DefaultInfoOptions()
	}

	info := &ImageInfo{
		Path:    imdPath,
		Comment: img.Comment,
		Tracks:  len(img.Tracks),
		Sectors: img.Store.Len(),
	}

	for _, sec := range img.Store.Sectors() {
		switch {
		case sec.Type.Unavailable():
			info.Unavailable++
		case sec.Type.DataError():
			info.DataErrors++
		}
		if sec.Type.Deleted() {
			info.Deleted++
		}
	}

	if opts.Verbose {
		info.TrackList = img.Tracks
	}

	if stat, err := os.Stat(imdPath); err == nil {
		info.Modified = stat.ModTime()
	}

	geom, err := flex.GeometryOf(img)
	if err != nil {
		info.Validation = append(info.Validation, err.Error())
		return info
	}
	info.Geometry = &geom
	info.ImageSize = geom.ImageSize()

	if !opts.Validate {
		return info
	}

	disk, err := flex.Linearize(img, 0)
	if err != nil {
		info.Validation = append(info.Validation, err.Error())
		return info
	}

	sir, err := disk.SIR()
	if err != nil {
		log.Debugf("no system information record: %v", err)
		info.Validation = append(info.Validation, err.Error())
		return info
	}
	info.SIR = sir

	for _, err := range sir.Validate(disk.Geometry) {
		info.Validation = append(info.Validation, err.Error())
	}

	return info
}

// outputJSON writes image information in JSON format
func outputJSON(info *ImageInfo) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}

// outputText writes image information in human-readable format
func outputText(info *ImageInfo, opts *InfoOptions) error {
	if opts.Quiet && len(info.Validation) == 0 {
		return nil
	}

	fmt.Printf("IMD Image: %s\n\n", info.Path)
	if info.Comment != nil {
		if info.Comment.Signed {
			fmt.Printf("Version:    %s\n", info.Comment.Version)
			fmt.Printf("Created:    %s\n", info.Comment.Timestamp)
		}
		if info.Comment.Text != "" {
			fmt.Printf("Comment:    %s\n", info.Comment.Text)
		}
	}
	fmt.Printf("Tracks:     %d\n", info.Tracks)
	fmt.Printf("Sectors:    %d\n", info.Sectors)
	if info.Unavailable+info.Deleted+info.DataErrors > 0 {
		fmt.Printf("Flagged:    %d unavailable, %d deleted, %d data errors\n",
			info.Unavailable, info.Deleted, info.DataErrors)
	}

	if !info.Modified.IsZero() {
		fmt.Printf("Modified:   %s\n", info.Modified.Format(time.RFC1123))
	}

	if info.Geometry != nil {
		fmt.Printf("\nFLEX Geometry:\n")
		fmt.Printf("Track 0:    %d sectors\n", info.Geometry.FirstTrackSectors)
		fmt.Printf("Tracks 1-%d: %d sectors\n", info.Geometry.Tracks-1, info.Geometry.SectorsPerTrack)
		fmt.Printf("Image Size: %d bytes\n", info.ImageSize)
	}

	if info.SIR != nil {
		fmt.Printf("\nVolume:     %s #%d\n", info.SIR.Label, info.SIR.Number)
		fmt.Printf("Date:       %s\n", info.SIR.Date())
		fmt.Printf("Free:       %d sectors (%s-%s)\n", info.SIR.FreeSectors, info.SIR.FirstFree, info.SIR.LastFree)
	}

	if opts.Verbose && len(info.TrackList) > 0 {
		fmt.Printf("\nTracks:\n")
		for _, tr := range info.TrackList {
			fmt.Printf("%6d  %s\n", tr.Offset, tr.TrackHeader)
		}
	}

	if len(info.Validation) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, warning := range info.Validation {
			fmt.Printf("- %s\n", warning)
		}
	}

	return nil
}

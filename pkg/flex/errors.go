// file: pkg/flex/errors.go

package flex

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMissingGeometry = errors.New("missing geometry track")
	ErrSectorRange     = errors.New("sector outside disk geometry")
)

// MissingGeometryError reports that no head 0 header was decoded for a track
// the geometry is sampled from.
type MissingGeometryError struct {
	Track int
}

func (e *MissingGeometryError) Error() string {
	return fmt.Sprintf("no header for track %d head 0 in image", e.Track)
}

func (e *MissingGeometryError) Unwrap() error {
	return ErrMissingGeometry
}

// MissingSectorError reports a sector the output layout needs but the image
// never supplied.
type MissingSectorError struct {
	Track  int
	Sector int
}

func (e *MissingSectorError) Error() string {
	return fmt.Sprintf("sector not found: track %d sector %d", e.Track, e.Sector)
}

// ValidationError represents a FLEX structure that disagrees with the disk
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error - %s: %s", e.Field, e.Message)
}

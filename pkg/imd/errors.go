// file: pkg/imd/errors.go

package imd

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNoDiskDataMarker      = errors.New("no 0x1A comment terminator found")
	ErrInvalidModeValue      = errors.New("invalid track mode value")
	ErrInvalidSectorSizeCode = errors.New("invalid sector size code")
	ErrInvalidSectorTypeCode = errors.New("invalid sector type code")
	ErrDuplicateSector       = errors.New("duplicate sector")
	ErrTruncated             = errors.New("image data truncated")
)

// IOError reports a failure of the file collaborator around the decoder.
type IOError struct {
	Op   string // open, read, create, write, decompress
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

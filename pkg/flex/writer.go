// file: pkg/flex/writer.go

package flex

import (
	"os"

	"github.com/ha1tch/imdflex/pkg/imd"
	"github.com/pkg/errors"
)

// SaveToFile writes the linearized image to a file. The file is removed again
// if the image cannot be written completely.
func SaveToFile(filename string, l *Linearizer) (int64, error) {
	if err := l.Check(); err != nil {
		return 0, err
	}

	file, err := os.Create(filename)
	if err != nil {
		return 0, &imd.IOError{Op: "create", Path: filename, Err: err}
	}

	n, err := l.WriteTo(file)
	if err != nil {
		file.Close()
		os.Remove(filename)
		var ioErr *imd.IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = filename
		}
		return n, err
	}

	if err := file.Close(); err != nil {
		os.Remove(filename)
		return n, &imd.IOError{Op: "write", Path: filename, Err: err}
	}
	return n, nil
}

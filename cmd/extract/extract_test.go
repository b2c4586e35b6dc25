// file: cmd/extract/extract_test.go

package extract

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ha1tch/imdflex/internal/imdtest"
	"github.com/ha1tch/imdflex/pkg/flex"
)

func setupImage(t *testing.T) string {
	t.Helper()
	imdPath := filepath.Join(t.TempDir(), "disk.imd")
	imdtest.FlexDisk("", 10, 18, 40).WriteFile(t, imdPath)
	return imdPath
}

func TestExtractToFile(t *testing.T) {
	imdPath := setupImage(t)
	outPath := filepath.Join(t.TempDir(), "out", "sector.bin")

	opts := DefaultExtractOptions()
	opts.Output = outPath
	opts.Quiet = true

	if err := Extract(imdPath, 5, 20, opts); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Output file not created: %v", err)
	}
	if !bytes.Equal(data, imdtest.SectorData(5, 20)) {
		t.Error("Extracted content mismatch")
	}

	// Existing output needs overwrite
	if err := Extract(imdPath, 5, 21, opts); err == nil {
		t.Error("Expected error for existing output file")
	}
	opts.Overwrite = true
	if err := Extract(imdPath, 5, 21, opts); err != nil {
		t.Fatalf("Extract with overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(outPath)
	if !bytes.Equal(data, imdtest.SectorData(5, 21)) {
		t.Error("Overwritten content mismatch")
	}
}

func TestExtractHex(t *testing.T) {
	imdPath := setupImage(t)

	var out bytes.Buffer
	opts := DefaultExtractOptions()
	opts.Hex = true
	opts.Stdout = &out

	if err := Extract(imdPath, 0, 1, opts); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if out.String() != hex.Dump(imdtest.SectorData(0, 1)) {
		t.Errorf("Unexpected hex dump:\n%s", out.String())
	}
}

func TestExtractLinear(t *testing.T) {
	imdPath := setupImage(t)

	var out bytes.Buffer
	opts := DefaultExtractOptions()
	opts.Linear = true
	opts.Stdout = &out

	// track 0 slot 30 is padding in the linear image
	if err := Extract(imdPath, 0, 30, opts); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !bytes.Equal(out.Bytes(), make([]byte, 256)) {
		t.Error("Padding slot should be zero")
	}

	opts.Linear = false
	err := Extract(imdPath, 0, 30, opts)
	var missing *flex.MissingSectorError
	if !errors.As(err, &missing) {
		t.Errorf("Expected MissingSectorError without linear, got %v", err)
	}

	opts.Linear = true
	if err := Extract(imdPath, 40, 1, opts); !errors.Is(err, flex.ErrSectorRange) {
		t.Errorf("Expected ErrSectorRange, got %v", err)
	}
}

func TestExtractMissingImage(t *testing.T) {
	opts := DefaultExtractOptions()
	opts.Stdout = &bytes.Buffer{}
	if err := Extract(filepath.Join(t.TempDir(), "missing.imd"), 0, 1, opts); err == nil {
		t.Error("Expected error for missing image")
	}
}

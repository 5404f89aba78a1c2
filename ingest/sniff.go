package ingest

import (
	"fmt"
	"os"
	"polarity-lab/errors"

	"github.com/gabriel-vasile/mimetype"
)

const textPlain = "text/plain"

// sniff rejects files that are empty or whose content is not text. CSV, TSV and any other
// text/plain descendant are accepted.
func sniff(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", errors.ErrNotText, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s", errors.ErrEmptyFile, path)
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("sniff %s: %w", path, err)
	}
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(textPlain) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s detected as %s", errors.ErrNotText, path, detected.String())
}

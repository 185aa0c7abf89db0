package launcher

import (
	"fmt"

	"github.com/magefile/mage/sh"
)

// PrepareOutputDirectory removes outputPath and everything below it. A path
// that does not exist is already clean.
func PrepareOutputDirectory(outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("%w: empty output path", ErrCleanupFailure)
	}
	if err := sh.Rm(outputPath); err != nil {
		return fmt.Errorf("%w: %v", ErrCleanupFailure, err)
	}
	return nil
}

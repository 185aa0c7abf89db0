package launcher

import (
	"fmt"
	"os"
)

// LocateSourceProject returns override verbatim when it is set, otherwise
// defaultPath. The chosen path must be an existing directory.
func LocateSourceProject(override, defaultPath string) (string, error) {
	path := defaultPath
	if override != "" {
		path = override
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: expected a directory at %q (set %s to override)",
			ErrProjectNotFound, path, EnvSourceOverride)
	}
	return path, nil
}

package filepathparser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func ParsePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		dirname, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(dirname, path[2:])
	}

	return filepath.Abs(path)
}

// ParseWorkingFolder resolves the path and creates the folder when it does not exist yet.
func ParseWorkingFolder(path string) (string, error) {
	folder, err := ParsePath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", fmt.Errorf("creating working folder %s: %w", folder, err)
	}
	return folder, nil
}

package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir, skipping the
// write if a config file already exists there.
func Initialize(fsys afero.Fs, dir string, logger *log.Logger) (string, error) {
	path := filepath.Join(dir, ConfigurationName)

	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return "", err
	}
	if exists {
		logger.Printf("%s already exists, leaving it untouched", path)
		return path, nil
	}

	if err := afero.WriteFile(fsys, path, defaultConfigData, 0644); err != nil {
		return "", err
	}

	logger.Printf("wrote default configuration to %s", path)
	return path, nil
}

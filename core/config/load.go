package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads the configuration at path, which may name either the config
// file itself or a directory containing one. A missing file is not an
// error: the embedded defaults apply, so running without a config behaves
// exactly like the bare wrapper.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	if path == "" {
		path = "."
	}
	if info, err := fsys.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ConfigurationName)
	}

	contents, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(contents, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

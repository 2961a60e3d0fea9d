package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for skel.
type Paths struct {
	// ConfigFile is the path to the config file (~/.skel/config.yaml).
	ConfigFile string

	// TemplatesDir is the user template-set directory (~/.skel/templates).
	TemplatesDir string

	// HomeDir is the skel home directory (~/.skel).
	HomeDir string
}

// DefaultPaths returns the default paths for skel.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	skelHome := filepath.Join(homeDir, ".skel")

	return &Paths{
		ConfigFile:   filepath.Join(skelHome, "config.yaml"),
		TemplatesDir: filepath.Join(skelHome, "templates"),
		HomeDir:      skelHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If SKEL_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("SKEL_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// GetTemplatesDir returns the user template-set directory path.
// If SKEL_TEMPLATES_DIR is set, it takes precedence.
func GetTemplatesDir() (string, error) {
	if envPath := os.Getenv("SKEL_TEMPLATES_DIR"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.TemplatesDir, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported, return as-is.
	return path, nil
}

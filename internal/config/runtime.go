package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("FERPY_RUNTIME_PATH"))
}

func GetEnvPath() string {
	return filepath.Join(GetRuntimePath(), ".env")
}

func GetLogPath() string {
	return filepath.Join(GetRuntimePath(), "ferpy.log")
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".ferpy"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

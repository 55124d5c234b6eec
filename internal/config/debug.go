package config

import "os"

// IsDebug reports FERPY_DEBUG=1. It is read before any config is loaded so
// that loading itself can log at debug level.
func IsDebug() bool {
	v, ok := os.LookupEnv("FERPY_DEBUG")
	return ok && v == "1"
}

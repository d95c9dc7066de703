package internal

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var (
	// DefaultAppName is used for config lookup and diagnostics
	DefaultAppName    = "xattrsum"
	DefaultConfigPath = filepath.Join(getHomeDir(), ".config", DefaultAppName)

	// DefaultAttrName is the single reserved extended attribute that holds
	// a file's content digest. No other attribute or sidecar state is used.
	DefaultAttrName = "user.xattrsum.sha256"

	// DefaultIgnoreFile, when present at a traversal root, excludes entries
	// using gitignore syntax.
	DefaultIgnoreFile = ".xattrsum-ignore"

	// DefaultAlgorithm is the only supported digest algorithm.
	DefaultAlgorithm = "sha256"
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current working directory if home directory is unavailable
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			// Last resort - use tmp directory
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

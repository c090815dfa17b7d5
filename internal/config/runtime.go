package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath returns the runtime directory before any config struct is
// parsed (the installer needs it to write the .env the structs read).
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("ALICE_RUNTIME_PATH"))
}

// resolveRuntimePath anchors relative runtime paths to the home directory so
// the installer and the running app agree on one location regardless of CWD.
// An empty value (unset or blanked variable) means the default directory.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".alicebot"
	}
	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

package paths

import (
	"os"
	"path/filepath"
)

const envHome = "CHATTERBOX_HOME_DIR"

// Home returns the base directory for chatterbox configuration/state.
// Defaults to ~/.chatterbox, can be overridden via CHATTERBOX_HOME_DIR.
func Home() string {
	if v := os.Getenv(envHome); v != "" {
		return v
	}
	hd, err := os.UserHomeDir()
	if err != nil || hd == "" {
		return ".chatterbox"
	}
	return filepath.Join(hd, ".chatterbox")
}

func EnsureHome() (string, error) {
	h := Home()
	if err := os.MkdirAll(h, 0o755); err != nil {
		return "", err
	}
	return h, nil
}

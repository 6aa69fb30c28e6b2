package cli

import (
	"io"
	"os"

	"github.com/Emma-Ok/time-report/internal/config"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// File defaults loaded from the user's config file, if present.
	File config.FileConfig
	// FileErr is a config file that exists but does not parse. Commands
	// fail on it before doing anything; a broken file must never be
	// silently replaced by the defaults.
	FileErr error
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	fc := config.DefaultFileConfig()
	var fileErr error
	if path, err := config.GetConfigPath(); err == nil {
		loaded, err := config.LoadOrDefault(path)
		if err != nil {
			fileErr = err
		} else {
			fc = loaded
		}
	}

	return &Deps{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		Exit:    os.Exit,
		File:    fc,
		FileErr: fileErr,
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

// GetDeps returns the current deps.
func GetDeps() *Deps {
	return deps
}

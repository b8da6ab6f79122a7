package render

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/askiada/go-seqlength/internal/failure"
)

// Backend names a way of showing images.
type Backend string

const (
	BackendXDG     Backend = "xdg"
	BackendMacOSX  Backend = "macosx"
	BackendWindows Backend = "windows"
	BackendNone    Backend = "none"
)

// aliases maps matplotlib backend names to their closest backend. An empty value stands for the
// platform default.
var aliases = map[string]Backend{
	"tkagg":  "",
	"macosx": BackendMacOSX,
	"agg":    BackendNone,
}

// Viewer shows an image file.
type Viewer interface {
	Show(ctx context.Context, path string) error
}

// Platform describes the host the viewer runs on.
type Platform struct {
	GOOS     string
	LookPath func(file string) (string, error)
}

// HostPlatform returns the platform of the running process.
func HostPlatform() Platform {
	return Platform{GOOS: runtime.GOOS, LookPath: exec.LookPath}
}

// Default returns the interactive backend of the platform.
func (p Platform) Default() Backend {
	switch p.GOOS {
	case "darwin":
		return BackendMacOSX
	case "windows":
		return BackendWindows
	default:
		return BackendXDG
	}
}

// ParseBackend resolves name, case insensitively, to a backend. An empty name is the platform default.
func (p Platform) ParseBackend(name string) (Backend, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return p.Default(), nil
	}

	if b, ok := aliases[key]; ok {
		if b == "" {
			return p.Default(), nil
		}

		return b, nil
	}

	switch b := Backend(key); b {
	case BackendXDG, BackendMacOSX, BackendWindows, BackendNone:
		return b, nil
	}

	return "", errors.Wrapf(failure.ErrBackendUnavailable, "unknown backend %q", name)
}

// Viewer returns the viewer of backend, failing with failure.ErrBackendUnavailable when the
// program it needs cannot be found.
func (p Platform) Viewer(backend Backend) (Viewer, error) {
	var name string

	var args []string

	switch backend {
	case BackendNone:
		return headless{}, nil
	case BackendXDG:
		name = "xdg-open"
	case BackendMacOSX:
		name = "open"
		args = []string{"-W"}
	case BackendWindows:
		name = "rundll32"
		args = []string{"url.dll,FileProtocolHandler"}
	default:
		return nil, errors.Wrapf(failure.ErrBackendUnavailable, "unknown backend %q", backend)
	}

	bin, err := p.LookPath(name)
	if err != nil {
		return nil, failure.Wrapf(failure.ErrBackendUnavailable, err, "backend %s", backend)
	}

	return &command{bin: bin, args: args}, nil
}

// SelectViewer returns the viewer of the backend called name. When it cannot be used, the platform
// default is tried, then images are not shown at all; every fallback is logged as a warning.
func SelectViewer(logger *log.Logger, p Platform, name string) Viewer {
	backend, err := p.ParseBackend(name)
	if err == nil {
		v, verr := p.Viewer(backend)
		if verr == nil {
			logger.Debug("using plot backend", "backend", backend)

			return v
		}

		err = verr
	}

	def := p.Default()
	if backend != def {
		logger.Warn("could not set the plot backend, using the default", "backend", name, "default", def, "err", err.Error())

		v, derr := p.Viewer(def)
		if derr == nil {
			return v
		}

		err = derr
	}

	logger.Warn("plot backend unavailable, plots will not be shown", "backend", def, "err", err.Error())

	return headless{}
}

type command struct {
	bin  string
	args []string
}

// Show runs the viewer program and waits for it to exit.
func (c *command) Show(ctx context.Context, path string) error {
	args := append(append([]string{}, c.args...), path)

	out, err := exec.CommandContext(ctx, c.bin, args...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s failed: %s", c.bin, strings.TrimSpace(string(out)))
	}

	return nil
}

type headless struct{}

func (headless) Show(context.Context, string) error {
	return nil
}

// Package photo is the boundary to the external image capability: a library
// picker and a camera capture. Both hand back an opaque URI; nothing here
// validates or copies the referenced resource.
package photo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	envPickerCmd = "STOCKPILE_PICKER_CMD"
	envCameraCmd = "STOCKPILE_CAMERA_CMD"

	// Sysexits EX_NOPERM: the command signals a denied permission grant.
	exitPermissionDenied = 77
)

var (
	ErrPermissionDenied = errors.New("photo: permission denied")
	ErrUnavailable      = errors.New("photo: capability not configured")
)

// Result is the outcome of a pick or capture: either cancelled, or a URI.
type Result struct {
	Cancelled bool
	URI       string
}

// Capability is the image collaborator contract. Implementations must treat
// cancellation as a normal outcome, not an error.
type Capability interface {
	PickFromLibrary(ctx context.Context) (Result, error)
	CaptureFromCamera(ctx context.Context) (Result, error)
}

// CommandCapability shells out to user-configured commands, the same way the
// external editor is resolved from $VISUAL/$EDITOR. The command prints the
// chosen reference on stdout; empty output means the user cancelled; exit
// status 77 (EX_NOPERM) means the platform denied the permission.
type CommandCapability struct {
	PickerCmd string
	CameraCmd string
}

// FromEnv resolves picker and camera commands from the environment.
func FromEnv() CommandCapability {
	return CommandCapability{
		PickerCmd: strings.TrimSpace(os.Getenv(envPickerCmd)),
		CameraCmd: strings.TrimSpace(os.Getenv(envCameraCmd)),
	}
}

func (c CommandCapability) PickFromLibrary(ctx context.Context) (Result, error) {
	return runCapability(ctx, c.PickerCmd)
}

func (c CommandCapability) CaptureFromCamera(ctx context.Context) (Result, error) {
	return runCapability(ctx, c.CameraCmd)
}

func runCapability(ctx context.Context, cmdline string) (Result, error) {
	args := splitShellWords(cmdline)
	if len(args) == 0 {
		return Result{}, ErrUnavailable
	}

	out, err := exec.CommandContext(ctx, args[0], args[1:]...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == exitPermissionDenied {
			return Result{}, ErrPermissionDenied
		}
		return Result{}, fmt.Errorf("photo: running %s: %w", args[0], err)
	}

	uri := strings.TrimSpace(string(out))
	if uri == "" {
		return Result{Cancelled: true}, nil
	}
	return Result{URI: uri}, nil
}

// splitShellWords splits a command line on whitespace, honoring single and
// double quotes. Enough for "cmd --flag 'some arg'"; no escapes, no globs.
func splitShellWords(s string) []string {
	var out []string
	var cur strings.Builder
	inSingle, inDouble := false, false
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case (r == ' ' || r == '\t') && !inSingle && !inDouble:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

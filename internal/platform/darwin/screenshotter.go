//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics
#include <CoreGraphics/CoreGraphics.h>

static int cg_check_screen_recording(void) {
    return CGPreflightScreenCaptureAccess() ? 1 : 0;
}
*/
import "C"
import (
	"fmt"
	"os/exec"
	"strconv"
)

// CheckScreenRecordingPermission checks if the process has macOS screen recording permission.
func CheckScreenRecordingPermission() error {
	if C.cg_check_screen_recording() == 0 {
		return fmt.Errorf(
			"screen recording permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Screen Recording\n" +
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the terminal and try again.")
	}
	return nil
}

// Screenshotter captures via the system screencapture tool, which handles
// Retina scale factors and multi-display layouts.
type Screenshotter struct{}

// NewScreenshotter creates the macOS screenshotter.
func NewScreenshotter() *Screenshotter {
	return &Screenshotter{}
}

func (s *Screenshotter) CaptureScreen(path string) error {
	if err := CheckScreenRecordingPermission(); err != nil {
		return err
	}
	out, err := exec.Command("/usr/sbin/screencapture", "-x", path).CombinedOutput()
	if err != nil {
		return fmt.Errorf("screencapture failed: %v (%s)", err, out)
	}
	return nil
}

func (s *Screenshotter) CaptureWindow(windowID int, path string) error {
	if err := CheckScreenRecordingPermission(); err != nil {
		return err
	}
	out, err := exec.Command("/usr/sbin/screencapture", "-x", "-o", "-l", strconv.Itoa(windowID), path).CombinedOutput()
	if err != nil {
		return fmt.Errorf("screencapture failed for window %d: %v (%s)", windowID, err, out)
	}
	return nil
}

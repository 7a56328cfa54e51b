//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>

static int ax_is_trusted(void) {
    return AXIsProcessTrusted();
}

// Check trust and ask the OS to show the grant prompt when missing.
static int ax_prompt_trusted(void) {
    const void *keys[] = { kAXTrustedCheckOptionPrompt };
    const void *values[] = { kCFBooleanTrue };
    CFDictionaryRef opts = CFDictionaryCreate(NULL, keys, values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    int trusted = AXIsProcessTrustedWithOptions(opts);
    CFRelease(opts);
    return trusted;
}
*/
import "C"
import "fmt"

// CheckAccessibilityPermission checks if the process has macOS accessibility permission.
// Returns an error with instructions if permission is not granted.
func CheckAccessibilityPermission() error {
	if C.ax_is_trusted() == 0 {
		return fmt.Errorf(
			"accessibility permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Accessibility\n" +
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the terminal and try again.")
	}
	return nil
}

// IsAccessibilityTrusted returns true if the process has accessibility permission.
func IsAccessibilityTrusted() bool {
	return C.ax_is_trusted() != 0
}

// RequestAccessibility triggers the OS accessibility grant prompt when
// permission is missing. Returns the current trust state.
func RequestAccessibility() bool {
	return C.ax_prompt_trusted() != 0
}

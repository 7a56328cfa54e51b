//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation
#include <CoreGraphics/CoreGraphics.h>

// Post one mouse event. kind: 0=move, 1=down, 2=up.
// button: 0=left, 1=right, 2=middle (maps to kCGMouseButton*).
static int cg_mouse(int kind, int button, int clickState, float x, float y) {
    CGPoint point = CGPointMake(x, y);

    CGMouseButton cgButton;
    CGEventType downType, upType;
    switch (button) {
        case 1:  // right
            cgButton = kCGMouseButtonRight;
            downType = kCGEventRightMouseDown;
            upType = kCGEventRightMouseUp;
            break;
        case 2:  // middle
            cgButton = kCGMouseButtonCenter;
            downType = kCGEventOtherMouseDown;
            upType = kCGEventOtherMouseUp;
            break;
        default:  // left (0)
            cgButton = kCGMouseButtonLeft;
            downType = kCGEventLeftMouseDown;
            upType = kCGEventLeftMouseUp;
            break;
    }

    CGEventType type = kCGEventMouseMoved;
    if (kind == 1) type = downType;
    if (kind == 2) type = upType;

    CGEventRef ev = CGEventCreateMouseEvent(NULL, type, point, cgButton);
    if (!ev) return -1;
    if (kind != 0 && clickState > 0) {
        CGEventSetIntegerValueField(ev, kCGMouseEventClickState, clickState);
    }
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

// Post one keyboard event with modifier flags.
static int cg_key(int down, int keyCode, unsigned long long flags) {
    CGEventRef ev = CGEventCreateKeyboardEvent(NULL, (CGKeyCode)keyCode, down ? true : false);
    if (!ev) return -1;
    if (flags) {
        CGEventSetFlags(ev, (CGEventFlags)flags);
    }
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

// Scroll in line units. dy positive = up, dx positive = left.
static int cg_scroll(int dy, int dx) {
    CGEventRef scroll = CGEventCreateScrollWheelEvent(
        NULL,
        kCGScrollEventUnitLine,
        2,
        dy,
        dx);
    if (!scroll) return -1;
    CGEventPost(kCGHIDEventTap, scroll);
    CFRelease(scroll);
    return 0;
}
*/
import "C"

import (
	"fmt"
	"time"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// Inputter posts CGEvents at the HID tap.
type Inputter struct{}

// NewInputter creates the macOS event synthesizer.
func NewInputter() *Inputter {
	return &Inputter{}
}

func cgButton(button platform.MouseButton) C.int {
	switch button {
	case platform.MouseRight:
		return 1
	case platform.MouseMiddle:
		return 2
	default:
		return 0
	}
}

func cgFlags(mods platform.ModifierMask) C.ulonglong {
	var flags uint64
	if mods&platform.ModShift != 0 {
		flags |= uint64(C.kCGEventFlagMaskShift)
	}
	if mods&platform.ModControl != 0 {
		flags |= uint64(C.kCGEventFlagMaskControl)
	}
	if mods&platform.ModOption != 0 {
		flags |= uint64(C.kCGEventFlagMaskAlternate)
	}
	if mods&platform.ModCommand != 0 {
		flags |= uint64(C.kCGEventFlagMaskCommand)
	}
	return C.ulonglong(flags)
}

func (inp *Inputter) Move(p model.Point) error {
	if C.cg_mouse(0, 0, 0, C.float(p.X), C.float(p.Y)) != 0 {
		return fmt.Errorf("failed to move mouse to (%d, %d)", p.X, p.Y)
	}
	return nil
}

func (inp *Inputter) MouseDown(button platform.MouseButton, clickCount int, p model.Point) error {
	if clickCount < 1 {
		clickCount = 1
	}
	if C.cg_mouse(1, cgButton(button), C.int(clickCount), C.float(p.X), C.float(p.Y)) != 0 {
		return fmt.Errorf("failed to press mouse at (%d, %d)", p.X, p.Y)
	}
	return nil
}

func (inp *Inputter) MouseUp(button platform.MouseButton, clickCount int, p model.Point) error {
	if clickCount < 1 {
		clickCount = 1
	}
	if C.cg_mouse(2, cgButton(button), C.int(clickCount), C.float(p.X), C.float(p.Y)) != 0 {
		return fmt.Errorf("failed to release mouse at (%d, %d)", p.X, p.Y)
	}
	return nil
}

func (inp *Inputter) KeyDown(virtualKeyCode int, modifiers platform.ModifierMask) error {
	if C.cg_key(1, C.int(virtualKeyCode), cgFlags(modifiers)) != 0 {
		return fmt.Errorf("failed to press key %d", virtualKeyCode)
	}
	return nil
}

func (inp *Inputter) KeyUp(virtualKeyCode int, modifiers platform.ModifierMask) error {
	if C.cg_key(0, C.int(virtualKeyCode), cgFlags(modifiers)) != 0 {
		return fmt.Errorf("failed to release key %d", virtualKeyCode)
	}
	return nil
}

func (inp *Inputter) ScrollTick(deltaX, deltaY int, p model.Point) error {
	// Move first so the scroll lands under the target point.
	if p.X != 0 || p.Y != 0 {
		if err := inp.Move(p); err != nil {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
	if C.cg_scroll(C.int(deltaY), C.int(deltaX)) != 0 {
		return fmt.Errorf("failed to scroll at (%d, %d)", p.X, p.Y)
	}
	return nil
}

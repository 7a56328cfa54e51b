//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework CoreGraphics -framework CoreFoundation -framework Foundation
#import <AppKit/AppKit.h>
#include <ApplicationServices/ApplicationServices.h>
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    pid_t pid;
    char *name;
} NSAppInfo;

// List running applications with a regular UI (dock icon).
static int ns_running_apps(NSAppInfo **out, int *count) {
    @autoreleasepool {
        NSArray<NSRunningApplication *> *apps = [[NSWorkspace sharedWorkspace] runningApplications];
        NSAppInfo *infos = malloc(sizeof(NSAppInfo) * (apps.count > 0 ? apps.count : 1));
        if (!infos) return -1;
        int n = 0;
        for (NSRunningApplication *app in apps) {
            if (app.activationPolicy != NSApplicationActivationPolicyRegular) continue;
            infos[n].pid = app.processIdentifier;
            const char *name = app.localizedName.UTF8String;
            infos[n].name = strdup(name ? name : "");
            n++;
        }
        *out = infos;
        *count = n;
        return 0;
    }
}

static void ns_free_apps(NSAppInfo *infos, int count) {
    for (int i = 0; i < count; i++) {
        free(infos[i].name);
    }
    free(infos);
}

static pid_t ns_frontmost_pid(void) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        return app ? app.processIdentifier : -1;
    }
}

static char *ns_app_name(pid_t pid) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
        if (!app) return NULL;
        const char *name = app.localizedName.UTF8String;
        return strdup(name ? name : "");
    }
}

static int ns_activate(pid_t pid) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
        if (!app) return -1;
        return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 0 : -1;
    }
}

static AXUIElementRef ax_app_element(pid_t pid) {
    return AXUIElementCreateApplication(pid);
}

static AXUIElementRef ax_system_wide(void) {
    return AXUIElementCreateSystemWide();
}

static void ax_set_timeout(AXUIElementRef el, float seconds) {
    AXUIElementSetMessagingTimeout(el, seconds);
}

// Hit-test the accessibility hierarchy at a screen point. Returns a
// retained element and fills pid with its owning process.
static AXUIElementRef ax_element_at(float x, float y, pid_t *pid) {
    AXUIElementRef sys = AXUIElementCreateSystemWide();
    AXUIElementRef el = NULL;
    AXError err = AXUIElementCopyElementAtPosition(sys, x, y, &el);
    CFRelease(sys);
    if (err != kAXErrorSuccess || el == NULL) return NULL;
    AXUIElementGetPid(el, pid);
    return el;
}

typedef struct {
    int windowID;
    pid_t pid;
    int layer;
    double x, y, w, h;
    char *title;
    char *owner;
} CGWinInfo;

static char *cg_copy_dict_string(CFDictionaryRef d, CFStringRef key) {
    CFStringRef s = CFDictionaryGetValue(d, key);
    if (!s || CFGetTypeID(s) != CFStringGetTypeID()) return strdup("");
    CFIndex max = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
    char *buf = malloc(max);
    if (!buf) return strdup("");
    if (!CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) {
        buf[0] = '\0';
    }
    return buf;
}

static int cg_dict_int(CFDictionaryRef d, CFStringRef key, int fallback) {
    CFNumberRef n = CFDictionaryGetValue(d, key);
    if (!n || CFGetTypeID(n) != CFNumberGetTypeID()) return fallback;
    int v = fallback;
    CFNumberGetValue(n, kCFNumberIntType, &v);
    return v;
}

// Coarse on-screen window list from the window server. No accessibility
// detail; owner, title, bounds, layer only.
static int cg_list_windows(CGWinInfo **out, int *count) {
    CFArrayRef list = CGWindowListCopyWindowInfo(
        kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
        kCGNullWindowID);
    if (!list) return -1;
    CFIndex n = CFArrayGetCount(list);
    CGWinInfo *infos = malloc(sizeof(CGWinInfo) * (n > 0 ? n : 1));
    if (!infos) {
        CFRelease(list);
        return -1;
    }
    int m = 0;
    for (CFIndex i = 0; i < n; i++) {
        CFDictionaryRef d = CFArrayGetValueAtIndex(list, i);
        CGRect rect = CGRectZero;
        CFDictionaryRef boundsDict = CFDictionaryGetValue(d, kCGWindowBounds);
        if (boundsDict) {
            CGRectMakeWithDictionaryRepresentation(boundsDict, &rect);
        }
        infos[m].windowID = cg_dict_int(d, kCGWindowNumber, 0);
        infos[m].pid = cg_dict_int(d, kCGWindowOwnerPID, 0);
        infos[m].layer = cg_dict_int(d, kCGWindowLayer, 0);
        infos[m].x = rect.origin.x;
        infos[m].y = rect.origin.y;
        infos[m].w = rect.size.width;
        infos[m].h = rect.size.height;
        infos[m].title = cg_copy_dict_string(d, kCGWindowName);
        infos[m].owner = cg_copy_dict_string(d, kCGWindowOwnerName);
        m++;
    }
    CFRelease(list);
    *out = infos;
    *count = m;
    return 0;
}

static void cg_free_windows(CGWinInfo *infos, int count) {
    for (int i = 0; i < count; i++) {
        free(infos[i].title);
        free(infos[i].owner);
    }
    free(infos);
}

static int cg_pointer(double *x, double *y) {
    CGEventRef e = CGEventCreate(NULL);
    if (!e) return -1;
    CGPoint p = CGEventGetLocation(e);
    CFRelease(e);
    *x = p.x;
    *y = p.y;
    return 0;
}
*/
import "C"

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// axApp is one running application. The accessibility element is created
// per call; AX app elements are cheap handles keyed on the pid.
type axApp struct {
	name string
	pid  int
}

func (a *axApp) Name() string { return a.name }
func (a *axApp) PID() int     { return a.pid }

func (a *axApp) Root() platform.Node {
	n := wrapNode(C.ax_app_element(C.pid_t(a.pid)))
	if n == nil {
		return nil
	}
	return n
}

func (a *axApp) Windows(timeout time.Duration) ([]platform.Node, error) {
	ref := C.ax_app_element(C.pid_t(a.pid))
	if ref == nil {
		return nil, fmt.Errorf("no accessibility element for %s (pid %d)", a.name, a.pid)
	}
	app := wrapNode(ref)
	if timeout > 0 {
		C.ax_set_timeout(app.ref, C.float(timeout.Seconds()))
	}
	refs, count := app.elementArray("AXWindows")
	if refs == nil && count == 0 {
		// Missing attribute and zero windows are indistinguishable here;
		// report both as an empty list.
		return []platform.Node{}, nil
	}
	wins := make([]platform.Node, 0, count)
	for _, r := range refs {
		if n := wrapNode(r); n != nil {
			wins = append(wins, n)
		}
	}
	return wins, nil
}

func (a *axApp) FocusedWindow() (platform.Node, bool) {
	ref := C.ax_app_element(C.pid_t(a.pid))
	if ref == nil {
		return nil, false
	}
	app := wrapNode(ref)
	cname := C.CString("AXFocusedWindow")
	defer C.free(unsafe.Pointer(cname))
	win := wrapNode(C.ax_copy_element(app.ref, cname))
	if win == nil {
		return nil, false
	}
	return win, true
}

func (a *axApp) Activate() error {
	if C.ns_activate(C.pid_t(a.pid)) != 0 {
		return fmt.Errorf("failed to activate %s (pid %d)", a.name, a.pid)
	}
	return nil
}

// axDesktop implements platform.Desktop for macOS.
type axDesktop struct{}

// NewDesktop creates the macOS desktop view.
func NewDesktop() *axDesktop {
	return &axDesktop{}
}

func (d *axDesktop) RunningApps() ([]platform.App, error) {
	var infos *C.NSAppInfo
	var count C.int
	if C.ns_running_apps(&infos, &count) != 0 {
		return nil, fmt.Errorf("failed to enumerate running applications")
	}
	defer C.ns_free_apps(infos, count)

	slice := unsafe.Slice(infos, int(count))
	apps := make([]platform.App, 0, int(count))
	for _, info := range slice {
		apps = append(apps, &axApp{name: C.GoString(info.name), pid: int(info.pid)})
	}
	return apps, nil
}

func (d *axDesktop) FrontmostApp() (platform.App, error) {
	pid := int(C.ns_frontmost_pid())
	if pid <= 0 {
		return nil, fmt.Errorf("no frontmost application")
	}
	app, ok := d.AppByPID(pid)
	if !ok {
		return nil, fmt.Errorf("frontmost application (pid %d) vanished", pid)
	}
	return app, nil
}

func (d *axDesktop) AppByPID(pid int) (platform.App, bool) {
	cname := C.ns_app_name(C.pid_t(pid))
	if cname == nil {
		return nil, false
	}
	defer C.free(unsafe.Pointer(cname))
	return &axApp{name: C.GoString(cname), pid: pid}, true
}

func (d *axDesktop) AppAtPoint(p model.Point) (platform.App, bool) {
	var pid C.pid_t
	ref := C.ax_element_at(C.float(p.X), C.float(p.Y), &pid)
	if ref == nil {
		return nil, false
	}
	C.CFRelease(C.CFTypeRef(unsafe.Pointer(ref)))
	return d.AppByPID(int(pid))
}

func (d *axDesktop) FocusedElement() (platform.Node, bool) {
	sys := wrapNode(C.ax_system_wide())
	if sys == nil {
		return nil, false
	}
	cname := C.CString("AXFocusedUIElement")
	defer C.free(unsafe.Pointer(cname))
	el := wrapNode(C.ax_copy_element(sys.ref, cname))
	if el == nil {
		return nil, false
	}
	return el, true
}

func (d *axDesktop) FocusedWindow() (platform.Node, bool) {
	app, err := d.FrontmostApp()
	if err != nil {
		return nil, false
	}
	return app.FocusedWindow()
}

// SystemWindows reads the system-wide AXWindows attribute. Most macOS
// versions do not expose it; ok is false then and callers move on.
func (d *axDesktop) SystemWindows() ([]platform.Node, bool) {
	sys := wrapNode(C.ax_system_wide())
	if sys == nil {
		return nil, false
	}
	refs, count := sys.elementArray("AXWindows")
	if count == 0 {
		return nil, false
	}
	wins := make([]platform.Node, 0, count)
	for _, r := range refs {
		if n := wrapNode(r); n != nil {
			wins = append(wins, n)
		}
	}
	return wins, true
}

func (d *axDesktop) ListWindows() ([]model.WindowInfo, error) {
	var cWindows *C.CGWinInfo
	var cCount C.int
	if C.cg_list_windows(&cWindows, &cCount) != 0 {
		return nil, fmt.Errorf("failed to enumerate windows")
	}
	defer C.cg_free_windows(cWindows, cCount)

	frontPid := int(C.ns_frontmost_pid())
	frontmostFocusAssigned := false

	slice := unsafe.Slice(cWindows, int(cCount))
	infos := make([]model.WindowInfo, 0, int(cCount))
	for _, cw := range slice {
		// Layer 0 only: real application windows.
		if int(cw.layer) != 0 {
			continue
		}
		pid := int(cw.pid)
		focused := false
		if pid == frontPid && !frontmostFocusAssigned {
			focused = true
			frontmostFocusAssigned = true
		}
		infos = append(infos, model.WindowInfo{
			App:   C.GoString(cw.owner),
			PID:   pid,
			Title: C.GoString(cw.title),
			ID:    int(cw.windowID),
			Bounds: model.Bounds{
				X:      int(cw.x),
				Y:      int(cw.y),
				Width:  int(cw.w),
				Height: int(cw.h),
			},
			Layer:   int(cw.layer),
			Focused: focused,
		})
	}
	return infos, nil
}

func (d *axDesktop) PointerLocation() (model.Point, error) {
	var x, y C.double
	if C.cg_pointer(&x, &y) != 0 {
		return model.Point{}, fmt.Errorf("failed to read pointer location")
	}
	return model.Point{X: int(x), Y: int(y)}, nil
}

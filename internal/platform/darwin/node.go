//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdio.h>
#include <stdlib.h>
#include <string.h>

// Copy a string-renderable attribute value. Numbers and booleans are
// rendered to text. Returns NULL when the attribute is absent; attribute
// gaps are normal and must not abort a traversal.
static char *ax_copy_string(AXUIElementRef el, const char *name) {
    CFStringRef attr = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    CFRelease(attr);
    if (err != kAXErrorSuccess || value == NULL) {
        return NULL;
    }

    char *out = NULL;
    if (CFGetTypeID(value) == CFStringGetTypeID()) {
        CFStringRef s = (CFStringRef)value;
        CFIndex max = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
        out = malloc(max);
        if (out && !CFStringGetCString(s, out, max, kCFStringEncodingUTF8)) {
            free(out);
            out = NULL;
        }
    } else if (CFGetTypeID(value) == CFNumberGetTypeID()) {
        double d = 0;
        CFNumberGetValue((CFNumberRef)value, kCFNumberDoubleType, &d);
        out = malloc(64);
        if (out) {
            if (d == (double)(long long)d) {
                snprintf(out, 64, "%lld", (long long)d);
            } else {
                snprintf(out, 64, "%g", d);
            }
        }
    } else if (CFGetTypeID(value) == CFBooleanGetTypeID()) {
        out = strdup(CFBooleanGetValue((CFBooleanRef)value) ? "true" : "false");
    }
    CFRelease(value);
    return out;
}

// Copy a boolean attribute, returning fallback when absent.
static int ax_copy_bool(AXUIElementRef el, const char *name, int fallback) {
    CFStringRef attr = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    CFRelease(attr);
    if (err != kAXErrorSuccess || value == NULL) {
        return fallback;
    }
    int out = fallback;
    if (CFGetTypeID(value) == CFBooleanGetTypeID()) {
        out = CFBooleanGetValue((CFBooleanRef)value) ? 1 : 0;
    }
    CFRelease(value);
    return out;
}

// Read the screen frame from AXPosition and AXSize. Returns nonzero when
// either attribute is missing.
static int ax_frame(AXUIElementRef el, double *x, double *y, double *w, double *h) {
    CFTypeRef posVal = NULL, sizeVal = NULL;
    if (AXUIElementCopyAttributeValue(el, kAXPositionAttribute, &posVal) != kAXErrorSuccess || posVal == NULL) {
        return -1;
    }
    if (AXUIElementCopyAttributeValue(el, kAXSizeAttribute, &sizeVal) != kAXErrorSuccess || sizeVal == NULL) {
        CFRelease(posVal);
        return -1;
    }
    CGPoint p = CGPointZero;
    CGSize s = CGSizeZero;
    AXValueGetValue((AXValueRef)posVal, kAXValueTypeCGPoint, &p);
    AXValueGetValue((AXValueRef)sizeVal, kAXValueTypeCGSize, &s);
    CFRelease(posVal);
    CFRelease(sizeVal);
    *x = p.x; *y = p.y; *w = s.width; *h = s.height;
    return 0;
}

// Copy an element-array attribute (AXChildren, AXWindows). Each returned
// ref is retained; the caller releases them individually and frees the
// array.
static int ax_copy_element_array(AXUIElementRef el, const char *name, AXUIElementRef **out, int *count) {
    CFStringRef attr = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    CFRelease(attr);
    if (err != kAXErrorSuccess || value == NULL) {
        return -1;
    }
    if (CFGetTypeID(value) != CFArrayGetTypeID()) {
        CFRelease(value);
        return -1;
    }
    CFArrayRef arr = (CFArrayRef)value;
    CFIndex n = CFArrayGetCount(arr);
    AXUIElementRef *refs = malloc(sizeof(AXUIElementRef) * (n > 0 ? n : 1));
    if (!refs) {
        CFRelease(value);
        return -1;
    }
    for (CFIndex i = 0; i < n; i++) {
        refs[i] = (AXUIElementRef)CFRetain(CFArrayGetValueAtIndex(arr, i));
    }
    CFRelease(value);
    *out = refs;
    *count = (int)n;
    return 0;
}

// Copy a single-element attribute (AXParent, AXFocusedWindow). Returns a
// retained ref or NULL.
static AXUIElementRef ax_copy_element(AXUIElementRef el, const char *name) {
    CFStringRef attr = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, attr, &value);
    CFRelease(attr);
    if (err != kAXErrorSuccess || value == NULL) {
        return NULL;
    }
    if (CFGetTypeID(value) != AXUIElementGetTypeID()) {
        CFRelease(value);
        return NULL;
    }
    return (AXUIElementRef)value;
}

static int ax_copy_actions(AXUIElementRef el, char ***out, int *count) {
    CFArrayRef names = NULL;
    if (AXUIElementCopyActionNames(el, &names) != kAXErrorSuccess || names == NULL) {
        return -1;
    }
    CFIndex n = CFArrayGetCount(names);
    char **strs = malloc(sizeof(char *) * (n > 0 ? n : 1));
    if (!strs) {
        CFRelease(names);
        return -1;
    }
    int m = 0;
    for (CFIndex i = 0; i < n; i++) {
        CFStringRef s = CFArrayGetValueAtIndex(names, i);
        CFIndex max = CFStringGetMaximumSizeForEncoding(CFStringGetLength(s), kCFStringEncodingUTF8) + 1;
        char *buf = malloc(max);
        if (buf && CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) {
            strs[m++] = buf;
        } else {
            free(buf);
        }
    }
    CFRelease(names);
    *out = strs;
    *count = m;
    return 0;
}

static void ax_free_strings(char **arr, int count) {
    for (int i = 0; i < count; i++) {
        free(arr[i]);
    }
    free(arr);
}

// CFHash of an AXUIElement keys on the underlying OS element, so two
// wrappers of the same node hash alike.
static unsigned long ax_hash(AXUIElementRef el) {
    return (unsigned long)CFHash((CFTypeRef)el);
}
*/
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// axNode wraps one retained AXUIElementRef. The ref is released by a
// finalizer; runtime.KeepAlive pins the wrapper across each C call.
type axNode struct {
	ref C.AXUIElementRef
}

// wrapNode takes ownership of a retained ref. Returns nil for NULL.
func wrapNode(ref C.AXUIElementRef) *axNode {
	if ref == nil {
		return nil
	}
	n := &axNode{ref: ref}
	runtime.SetFinalizer(n, func(n *axNode) {
		C.CFRelease(C.CFTypeRef(unsafe.Pointer(n.ref)))
	})
	return n
}

func (n *axNode) stringAttr(name string) string {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cs := C.ax_copy_string(n.ref, cname)
	runtime.KeepAlive(n)
	if cs == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(cs))
	return C.GoString(cs)
}

func (n *axNode) boolAttr(name string, fallback bool) bool {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	fb := C.int(0)
	if fallback {
		fb = 1
	}
	v := C.ax_copy_bool(n.ref, cname, fb)
	runtime.KeepAlive(n)
	return v != 0
}

func (n *axNode) Role() string            { return n.stringAttr("AXRole") }
func (n *axNode) Subrole() string         { return n.stringAttr("AXSubrole") }
func (n *axNode) Title() string           { return n.stringAttr("AXTitle") }
func (n *axNode) Label() string           { return n.stringAttr("AXDescription") }
func (n *axNode) Value() string           { return n.stringAttr("AXValue") }
func (n *axNode) RoleDescription() string { return n.stringAttr("AXRoleDescription") }
func (n *axNode) Identifier() string      { return n.stringAttr("AXIdentifier") }

func (n *axNode) Bounds() (model.Bounds, bool) {
	var x, y, w, h C.double
	rc := C.ax_frame(n.ref, &x, &y, &w, &h)
	runtime.KeepAlive(n)
	if rc != 0 {
		return model.Bounds{}, false
	}
	return model.Bounds{X: int(x), Y: int(y), Width: int(w), Height: int(h)}, true
}

// Enabled defaults to true: most roles never expose AXEnabled.
func (n *axNode) Enabled() bool  { return n.boolAttr("AXEnabled", true) }
func (n *axNode) Selected() bool { return n.boolAttr("AXSelected", false) }

func (n *axNode) Actions() []string {
	var strs **C.char
	var count C.int
	rc := C.ax_copy_actions(n.ref, &strs, &count)
	runtime.KeepAlive(n)
	if rc != 0 || count == 0 {
		if rc == 0 {
			C.ax_free_strings(strs, count)
		}
		return nil
	}
	defer C.ax_free_strings(strs, count)
	slice := unsafe.Slice(strs, int(count))
	actions := make([]string, 0, int(count))
	for _, cs := range slice {
		actions = append(actions, C.GoString(cs))
	}
	return actions
}

func (n *axNode) Children() []platform.Node {
	refs, count := n.elementArray("AXChildren")
	if count == 0 {
		return nil
	}
	children := make([]platform.Node, 0, count)
	for _, ref := range refs {
		if child := wrapNode(ref); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// elementArray copies an element-array attribute into a Go slice of
// retained refs. Ownership of each ref passes to the caller.
func (n *axNode) elementArray(name string) ([]C.AXUIElementRef, int) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var refs *C.AXUIElementRef
	var count C.int
	rc := C.ax_copy_element_array(n.ref, cname, &refs, &count)
	runtime.KeepAlive(n)
	if rc != 0 {
		return nil, 0
	}
	defer C.free(unsafe.Pointer(refs))
	if count == 0 {
		return nil, 0
	}
	out := make([]C.AXUIElementRef, int(count))
	copy(out, unsafe.Slice(refs, int(count)))
	return out, int(count)
}

func (n *axNode) Parent() platform.Node {
	cname := C.CString("AXParent")
	defer C.free(unsafe.Pointer(cname))
	ref := C.ax_copy_element(n.ref, cname)
	runtime.KeepAlive(n)
	if ref == nil {
		return nil
	}
	return wrapNode(ref)
}

func (n *axNode) Identity() uintptr {
	h := C.ax_hash(n.ref)
	runtime.KeepAlive(n)
	return uintptr(h)
}

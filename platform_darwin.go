//go:build darwin && cgo

package main

// Registers the macOS backend with the platform provider.
import _ "github.com/steipete/peekaboo-go/internal/platform/darwin"

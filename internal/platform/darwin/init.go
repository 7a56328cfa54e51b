//go:build darwin && cgo

package darwin

import "github.com/steipete/peekaboo-go/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Desktop:       NewDesktop(),
			Inputter:      NewInputter(),
			Screenshotter: NewScreenshotter(),
		}, nil
	}
	platform.RequestPermissionsFunc = func() {
		RequestAccessibility()
	}
}

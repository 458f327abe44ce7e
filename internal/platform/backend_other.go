//go:build !linux

package platform

import (
	"fmt"
	"runtime"
)

// Connect reports that no native backend exists for this platform.
func Connect() (Backend, func(), error) {
	return nil, nil, fmt.Errorf("no window system backend for %s", runtime.GOOS)
}

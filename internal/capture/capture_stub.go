//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import "image"

// Screen is unsupported on this platform.
func Screen() (*image.RGBA, error) { return nil, ErrUnsupported }

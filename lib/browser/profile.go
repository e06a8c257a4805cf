package browser

import "github.com/go-rod/rod/lib/devices"

// Profile is a device/viewport configuration for a scrape pass.
type Profile struct {
	Name   string
	Width  int
	Height int
	// Device, when non-empty, takes precedence over Width/Height and
	// emulates the full device descriptor (touch, mobile user-agent).
	Device devices.Device
}

func Desktop() Profile {
	return Profile{
		Name:   "desktop",
		Width:  1920,
		Height: 1080,
	}
}

func Mobile() Profile {
	return Profile{
		Name:   "mobile",
		Device: devices.IPhoneX,
	}
}

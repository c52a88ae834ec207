// Package usbdiag peeks at the raw USB bus to enrich device-not-found
// diagnostics. HID enumeration can come up empty while the device is
// physically present but missing a driver; the raw bus count helps tell the
// two situations apart.
package usbdiag

import (
	"log/slog"

	"github.com/karalabe/usb"
)

// CountDevices reports how many raw USB devices are visible on the bus.
// It returns -1 when the bus could not be enumerated at all.
func CountDevices() int {
	infos, err := usb.Enumerate(0, 0)
	if err != nil {
		slog.Debug("raw USB enumeration failed", "error", err)
		return -1
	}
	return len(infos)
}

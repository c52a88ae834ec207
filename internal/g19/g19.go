// Package g19 drives the backlight of a Logitech G19 keyboard through its
// HID lighting feature report.
package g19

import (
	"fmt"
	"log/slog"

	"github.com/seagrayinc/g19ctl/internal/hid"
)

const (
	VendorID  uint16 = 0x046D
	ProductID uint16 = 0xC229

	// LightingReportID is the feature report carrying the backlight color.
	// Reverse engineered, as are the byte offsets below; together they form
	// the hardware contract and must not be derived or adjusted.
	LightingReportID byte = 7

	redOffset   = 1
	greenOffset = 2
	blueOffset  = 3
)

// Color holds one RGB backlight value. Any combination of channels is valid.
type Color struct {
	R, G, B uint8
}

// Find scans the attached HID devices in enumeration order and returns the
// first one matching the vendor/product pair. Absence is not an error; OS
// enumeration failures are logged and also reported as not found. The device
// is not opened.
func Find(mgr hid.Manager, vendorID, productID uint16) (hid.Info, bool) {
	devs, err := mgr.List()
	if err != nil {
		slog.Debug("HID enumeration failed", "error", err)
		return hid.Info{}, false
	}
	slog.Debug("HID devices enumerated", "count", len(devs))

	for _, d := range devs {
		if d.VendorID == vendorID && d.ProductID == productID {
			fmt.Printf("Device found: %s (Vendor: 0x%04x, Product: 0x%04x)\n",
				d.Product, d.VendorID, d.ProductID)
			return d, true
		}
	}
	return hid.Info{}, false
}

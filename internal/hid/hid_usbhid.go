//go:build !windows

package hid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	usbhid "rafaelmartins.com/p/usbhid"
)

type usbManager struct{}

func newManager() (Manager, error) { return &usbManager{}, nil }

func (m *usbManager) List() ([]Info, error) {
	devs, err := usbhid.Enumerate(nil)
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(devs))
	for _, d := range devs {
		out = append(out, Info{
			Path:         d.Path(),
			VendorID:     d.VendorId(),
			ProductID:    d.ProductId(),
			Product:      d.Product(),
			Manufacturer: d.Manufacturer(),
		})
	}
	return out, nil
}

func (m *usbManager) Open(info Info) (Device, error) {
	d, err := usbhid.Get(func(dev *usbhid.Device) bool {
		return dev.Path() == info.Path
	}, true, false)
	if err != nil {
		return nil, err
	}
	return &usbDevice{d}, nil
}

type usbDevice struct{ d *usbhid.Device }

func (d *usbDevice) GetFeature(reportID byte) ([]byte, error) {
	raw, err := d.d.GetFeatureReport(reportID)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	// usbhid strips the report-ID byte; restore the full-buffer framing.
	buf := make([]byte, len(raw)+1)
	buf[0] = reportID
	copy(buf[1:], raw)
	return buf, nil
}

func (d *usbDevice) SendFeature(reportID byte, data []byte) error {
	return d.d.SetFeatureReport(reportID, data)
}

func (d *usbDevice) Reports() ([]ReportInfo, error) {
	desc, err := readReportDescriptor(d.d.Path())
	if err != nil {
		return nil, err
	}
	return ParseReportDescriptor(desc)
}

func (d *usbDevice) Close() error { return d.d.Close() }

// readReportDescriptor loads the raw report descriptor for a hidraw node
// from sysfs. usbhid exposes only the per-kind maximum lengths, so the
// per-report listing comes from the kernel's copy of the descriptor.
func readReportDescriptor(devPath string) ([]byte, error) {
	name := filepath.Base(devPath)
	if !strings.HasPrefix(name, "hidraw") {
		return nil, fmt.Errorf("hid: no report descriptor available for %s", devPath)
	}
	return os.ReadFile(filepath.Join("/sys/class/hidraw", name, "device", "report_descriptor"))
}

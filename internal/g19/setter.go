package g19

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/seagrayinc/g19ctl/internal/hid"
)

// Options configure a SetColor call.
type Options struct {
	// Verbose prints the outgoing report buffer as a hex dump before sending.
	Verbose bool
}

type bufferSource int

const (
	srcLiveSnapshot bufferSource = iota
	srcAllocated
)

// SetColor opens the device behind info, patches the RGB bytes of the
// lighting feature report, and sends it back. It reports whether the command
// was transmitted; every failure path prints its own diagnostic before
// returning false. The device is closed on every path once it was opened.
func SetColor(mgr hid.Manager, info hid.Info, c Color, opts Options) bool {
	dev, err := mgr.Open(info)
	if err != nil {
		fmt.Printf("Error opening device: %v\n", err)
		return false
	}
	defer dev.Close()

	rep, ok := findFeatureReport(dev, LightingReportID)
	if !ok {
		fmt.Printf("Error: no HID feature report with ID %d to control the lighting.\n", LightingReportID)
		fmt.Println("Consider running with --inspect to see the available reports.")
		return false
	}

	buf, src, ok := acquireBuffer(dev, rep)
	if !ok {
		return false
	}
	slog.Debug("report buffer acquired", "source", int(src), "size", len(buf))

	if redOffset >= len(buf) || greenOffset >= len(buf) || blueOffset >= len(buf) {
		fmt.Printf("Error: color offsets (%d, %d, %d) out of range for buffer of size %d.\n",
			redOffset, greenOffset, blueOffset, len(buf))
		return false
	}
	buf[redOffset] = c.R
	buf[greenOffset] = c.G
	buf[blueOffset] = c.B

	if opts.Verbose {
		fmt.Printf("Sending color command (R=%d, G=%d, B=%d) to report ID %d...\n", c.R, c.G, c.B, rep.ID)
		fmt.Printf("Buffer to send (hex): %s\n", hexDump(buf))
	}

	if err := dev.SendFeature(rep.ID, buf[1:]); err != nil {
		fmt.Printf("Error sending color command: %v\n", err)
		return false
	}

	fmt.Println("Color command sent.")
	return true
}

// findFeatureReport looks up a feature report by ID. Output and input reports
// are deliberately not searched; the lighting control is only known to work
// as a feature report.
func findFeatureReport(dev hid.Device, id byte) (hid.ReportInfo, bool) {
	reports, err := dev.Reports()
	if err != nil {
		slog.Debug("report listing failed", "error", err)
		return hid.ReportInfo{}, false
	}
	for _, r := range reports {
		if r.Kind == hid.ReportFeature && r.ID == id {
			return r, true
		}
	}
	return hid.ReportInfo{}, false
}

// acquireBuffer resolves the bytes to patch. It prefers the report's live
// contents; when the device reads back empty or the read fails outright, it
// converges on a zero buffer of the declared report length with the report ID
// at byte 0. Not every HID backend can produce a readable snapshot of a
// feature report, so both degraded paths are expected in the field.
func acquireBuffer(dev hid.Device, rep hid.ReportInfo) ([]byte, bufferSource, bool) {
	raw, err := dev.GetFeature(rep.ID)
	switch {
	case err == nil && len(raw) > 0:
		return raw, srcLiveSnapshot, true

	case err == nil:
		if rep.Length <= 0 {
			fmt.Println("Error: could not read raw report data or determine the report size.")
			return nil, 0, false
		}
		fmt.Printf("Notice: report read came back empty. Building a buffer of size %d.\n", rep.Length)

	default:
		fmt.Printf("Error reading current report contents (%v). Building the buffer manually.\n", err)
		if rep.Length <= 0 {
			fmt.Println("Error: could not determine the report size to build the buffer.")
			return nil, 0, false
		}
	}

	buf := make([]byte, rep.Length)
	buf[0] = rep.ID
	return buf, srcAllocated, true
}

func hexDump(b []byte) string {
	var sb strings.Builder
	for i, x := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", x)
	}
	return sb.String()
}

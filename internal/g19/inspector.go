package g19

import (
	"fmt"

	"github.com/seagrayinc/g19ctl/internal/hid"
)

// Inspect opens the device and lists the ID and byte size of every feature,
// output, and input report it exposes. It is a diagnostic aid: errors are
// printed but never propagated, and the device is always closed once opened.
func Inspect(mgr hid.Manager, info hid.Info) {
	dev, err := mgr.Open(info)
	if err != nil {
		fmt.Printf("Error inspecting reports: %v\n", err)
		return
	}
	defer dev.Close()

	fmt.Println("\n--- HID Report Inspection ---")
	reports, err := dev.Reports()
	if err != nil {
		fmt.Printf("Error inspecting reports: %v\n", err)
	}

	for _, kind := range []hid.ReportKind{hid.ReportFeature, hid.ReportOutput, hid.ReportInput} {
		fmt.Printf("%s reports:\n", kind)
		for _, r := range reports {
			if r.Kind == kind {
				fmt.Printf("  ID: %d, size (bytes): %d\n", r.ID, r.Length)
			}
		}
	}
	fmt.Println("--- End of Inspection ---")
	fmt.Println()
}

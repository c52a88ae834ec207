package hid

// ReportKind classifies HID reports into the three kinds a report descriptor
// can declare. They are disjoint; a report ID may appear in more than one kind.
type ReportKind int

const (
	ReportFeature ReportKind = iota
	ReportOutput
	ReportInput
)

func (k ReportKind) String() string {
	switch k {
	case ReportFeature:
		return "Feature"
	case ReportOutput:
		return "Output"
	case ReportInput:
		return "Input"
	}
	return "Unknown"
}

// ReportInfo identifies one report exposed by a device. Length is the full
// report size in bytes, including the leading report-ID byte on devices that
// use numbered reports.
type ReportInfo struct {
	Kind   ReportKind
	ID     byte
	Length int
}

// Device represents an opened HID device capable of feature-report I/O.
//
// GetFeature returns the report with the report-ID byte at offset 0 followed
// by the payload. SendFeature takes the payload without the ID byte; backends
// prepend it as their transport requires.
type Device interface {
	Reports() ([]ReportInfo, error)
	GetFeature(reportID byte) ([]byte, error)
	SendFeature(reportID byte, data []byte) error
	Close() error
}

// Info represents a HID device descriptor.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Product      string
	Manufacturer string
}

// Manager enumerates and opens HID devices.
type Manager interface {
	List() ([]Info, error)
	Open(info Info) (Device, error)
}

// NewManager returns the OS-specific HID manager.
func NewManager() (Manager, error) {
	return newManager()
}

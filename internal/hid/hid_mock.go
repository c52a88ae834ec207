package hid

import "errors"

// ErrMockNoDevice is returned by MockManager.Open when no device is scripted.
var ErrMockNoDevice = errors.New("hid: no mock device configured")

// MockDevice is a scriptable in-memory Device for tests. Feature holds the
// live snapshot returned per report ID, in the same framing as real backends
// (report-ID byte at offset 0). Every send and close is recorded.
type MockDevice struct {
	ReportTable []ReportInfo
	ReportsErr  error
	Feature     map[byte][]byte
	GetErr      error
	SendErr     error

	SentIDs    []byte
	Sent       [][]byte
	CloseCalls int
}

func (m *MockDevice) Reports() ([]ReportInfo, error) {
	if m.ReportsErr != nil {
		return nil, m.ReportsErr
	}
	return append([]ReportInfo(nil), m.ReportTable...), nil
}

func (m *MockDevice) GetFeature(reportID byte) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return append([]byte(nil), m.Feature[reportID]...), nil
}

func (m *MockDevice) SendFeature(reportID byte, data []byte) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.SentIDs = append(m.SentIDs, reportID)
	m.Sent = append(m.Sent, append([]byte(nil), data...))
	return nil
}

func (m *MockDevice) Close() error {
	m.CloseCalls++
	return nil
}

// MockManager serves a fixed device list and hands out a single scripted
// device on Open.
type MockManager struct {
	Devices []Info
	Device  *MockDevice
	ListErr error
	OpenErr error
	Opens   int
}

func (m *MockManager) List() ([]Info, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]Info(nil), m.Devices...), nil
}

func (m *MockManager) Open(info Info) (Device, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	if m.Device == nil {
		return nil, ErrMockNoDevice
	}
	m.Opens++
	return m.Device, nil
}

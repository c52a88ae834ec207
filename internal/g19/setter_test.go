package g19

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seagrayinc/g19ctl/internal/hid"
)

func g19Info() hid.Info {
	return hid.Info{
		Path:      "hidraw3",
		VendorID:  VendorID,
		ProductID: ProductID,
		Product:   "Logitech G19 Gaming Keyboard",
	}
}

func lightingReportTable(length int) []hid.ReportInfo {
	return []hid.ReportInfo{
		{Kind: hid.ReportInput, ID: 1, Length: 9},
		{Kind: hid.ReportFeature, ID: LightingReportID, Length: length},
	}
}

func TestSetColorLiveSnapshot(t *testing.T) {
	snapshot := make([]byte, 32)
	for i := range snapshot {
		snapshot[i] = byte(0xA0 + i)
	}
	dev := &hid.MockDevice{
		ReportTable: lightingReportTable(32),
		Feature:     map[byte][]byte{LightingReportID: snapshot},
	}
	mgr := &hid.MockManager{Device: dev}

	ok := SetColor(mgr, g19Info(), Color{R: 10, G: 20, B: 30}, Options{})
	require.True(t, ok)

	require.Len(t, dev.Sent, 1)
	assert.Equal(t, []byte{LightingReportID}, dev.SentIDs)

	sent := dev.Sent[0]
	require.Len(t, sent, 31)
	assert.Equal(t, byte(10), sent[0])
	assert.Equal(t, byte(20), sent[1])
	assert.Equal(t, byte(30), sent[2])
	// Every byte beyond the color offsets carries over from the snapshot.
	for i := 3; i < len(sent); i++ {
		assert.Equal(t, snapshot[i+1], sent[i], "byte %d", i)
	}

	assert.Equal(t, 1, dev.CloseCalls)
}

func TestSetColorReportMissing(t *testing.T) {
	dev := &hid.MockDevice{
		ReportTable: []hid.ReportInfo{
			{Kind: hid.ReportFeature, ID: 4, Length: 16},
			// The lighting report appearing as an output report must not match.
			{Kind: hid.ReportOutput, ID: LightingReportID, Length: 16},
		},
	}
	mgr := &hid.MockManager{Device: dev}

	ok := SetColor(mgr, g19Info(), Color{R: 1, G: 2, B: 3}, Options{})
	assert.False(t, ok)
	assert.Empty(t, dev.Sent)
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestSetColorReportListingError(t *testing.T) {
	dev := &hid.MockDevice{ReportsErr: errors.New("descriptor unavailable")}
	mgr := &hid.MockManager{Device: dev}

	ok := SetColor(mgr, g19Info(), Color{}, Options{})
	assert.False(t, ok)
	assert.Empty(t, dev.Sent)
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestSetColorEmptySnapshotAllocates(t *testing.T) {
	dev := &hid.MockDevice{ReportTable: lightingReportTable(16)}
	mgr := &hid.MockManager{Device: dev}

	ok := SetColor(mgr, g19Info(), Color{R: 255, G: 0, B: 128}, Options{Verbose: true})
	require.True(t, ok)

	require.Len(t, dev.Sent, 1)
	sent := dev.Sent[0]
	require.Len(t, sent, 15)
	assert.Equal(t, byte(255), sent[0])
	assert.Equal(t, byte(0), sent[1])
	assert.Equal(t, byte(128), sent[2])
	for i := 3; i < len(sent); i++ {
		assert.Zero(t, sent[i], "byte %d", i)
	}
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestSetColorEmptySnapshotNoLength(t *testing.T) {
	dev := &hid.MockDevice{ReportTable: lightingReportTable(0)}
	mgr := &hid.MockManager{Device: dev}

	ok := SetColor(mgr, g19Info(), Color{R: 1, G: 2, B: 3}, Options{})
	assert.False(t, ok)
	assert.Empty(t, dev.Sent)
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestSetColorReadErrorFallsBackToAllocation(t *testing.T) {
	dev := &hid.MockDevice{
		ReportTable: lightingReportTable(8),
		GetErr:      errors.New("read not supported"),
	}
	mgr := &hid.MockManager{Device: dev}

	ok := SetColor(mgr, g19Info(), Color{R: 7, G: 8, B: 9}, Options{})
	require.True(t, ok)
	require.Len(t, dev.Sent, 1)
	assert.Equal(t, []byte{7, 8, 9, 0, 0, 0, 0}, dev.Sent[0])
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestSetColorReadErrorNoLength(t *testing.T) {
	dev := &hid.MockDevice{
		ReportTable: lightingReportTable(0),
		GetErr:      errors.New("read not supported"),
	}
	mgr := &hid.MockManager{Device: dev}

	ok := SetColor(mgr, g19Info(), Color{}, Options{})
	assert.False(t, ok)
	assert.Empty(t, dev.Sent)
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestSetColorOffsetsOutOfRange(t *testing.T) {
	// A three-byte snapshot cannot hold the blue offset.
	dev := &hid.MockDevice{
		ReportTable: lightingReportTable(3),
		Feature:     map[byte][]byte{LightingReportID: {7, 1, 2}},
	}
	mgr := &hid.MockManager{Device: dev}

	ok := SetColor(mgr, g19Info(), Color{R: 1, G: 2, B: 3}, Options{})
	assert.False(t, ok)
	assert.Empty(t, dev.Sent)
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestSetColorTransmissionFailure(t *testing.T) {
	dev := &hid.MockDevice{
		ReportTable: lightingReportTable(16),
		Feature:     map[byte][]byte{LightingReportID: make([]byte, 16)},
		SendErr:     errors.New("pipe stalled"),
	}
	mgr := &hid.MockManager{Device: dev}

	ok := SetColor(mgr, g19Info(), Color{R: 1, G: 2, B: 3}, Options{})
	assert.False(t, ok)
	assert.Empty(t, dev.Sent)
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestSetColorOpenFailure(t *testing.T) {
	dev := &hid.MockDevice{ReportTable: lightingReportTable(16)}
	mgr := &hid.MockManager{Device: dev, OpenErr: errors.New("device is locked by another application")}

	ok := SetColor(mgr, g19Info(), Color{R: 1, G: 2, B: 3}, Options{})
	assert.False(t, ok)
	assert.Zero(t, dev.CloseCalls)
}

func TestAcquireBufferSources(t *testing.T) {
	rep := hid.ReportInfo{Kind: hid.ReportFeature, ID: LightingReportID, Length: 8}

	t.Run("live snapshot keeps byte zero untouched", func(t *testing.T) {
		dev := &hid.MockDevice{Feature: map[byte][]byte{LightingReportID: {0x99, 1, 2, 3}}}
		buf, src, ok := acquireBuffer(dev, rep)
		require.True(t, ok)
		assert.Equal(t, srcLiveSnapshot, src)
		assert.Equal(t, byte(0x99), buf[0])
	})

	t.Run("fresh allocation is tagged with the report ID", func(t *testing.T) {
		dev := &hid.MockDevice{}
		buf, src, ok := acquireBuffer(dev, rep)
		require.True(t, ok)
		assert.Equal(t, srcAllocated, src)
		require.Len(t, buf, 8)
		assert.Equal(t, LightingReportID, buf[0])
	})

	t.Run("unavailable when nothing yields a size", func(t *testing.T) {
		dev := &hid.MockDevice{GetErr: errors.New("nope")}
		_, _, ok := acquireBuffer(dev, hid.ReportInfo{Kind: hid.ReportFeature, ID: LightingReportID})
		assert.False(t, ok)
	})
}

func TestHexDump(t *testing.T) {
	assert.Equal(t, "07 ff 00 80", hexDump([]byte{0x07, 0xFF, 0x00, 0x80}))
	assert.Equal(t, "", hexDump(nil))
}

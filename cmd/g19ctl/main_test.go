package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seagrayinc/g19ctl/internal/config"
	"github.com/seagrayinc/g19ctl/internal/g19"
	"github.com/seagrayinc/g19ctl/internal/hid"
)

func g19Devices() []hid.Info {
	return []hid.Info{
		{Path: "hidraw0", VendorID: 0x1A2B, ProductID: 0x3C4D, Product: "Some Mouse"},
		{Path: "hidraw1", VendorID: g19.VendorID, ProductID: g19.ProductID, Product: "Logitech G19 Gaming Keyboard"},
	}
}

func TestRunSetsColor(t *testing.T) {
	dev := &hid.MockDevice{
		ReportTable: []hid.ReportInfo{{Kind: hid.ReportFeature, ID: g19.LightingReportID, Length: 32}},
		Feature:     map[byte][]byte{g19.LightingReportID: make([]byte, 32)},
	}
	mgr := &hid.MockManager{Devices: g19Devices(), Device: dev}

	err := run(&config.CLI{R: 255, G: 0, B: 128}, mgr)
	require.NoError(t, err)
	require.Len(t, dev.Sent, 1)
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestRunDeviceNotFound(t *testing.T) {
	mgr := &hid.MockManager{Devices: []hid.Info{
		{Path: "hidraw0", VendorID: 0x1A2B, ProductID: 0x3C4D},
	}}

	err := run(&config.CLI{R: 1, G: 2, B: 3}, mgr)
	assert.ErrorIs(t, err, errFailed)
	// Nothing may be opened when no device matched.
	assert.Zero(t, mgr.Opens)
}

func TestRunSetterFailureMapsToError(t *testing.T) {
	dev := &hid.MockDevice{
		ReportTable: []hid.ReportInfo{{Kind: hid.ReportFeature, ID: 4, Length: 16}},
	}
	mgr := &hid.MockManager{Devices: g19Devices(), Device: dev}

	err := run(&config.CLI{R: 1, G: 2, B: 3}, mgr)
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, 1, dev.CloseCalls)
}

func TestRunInspectAlwaysSucceeds(t *testing.T) {
	dev := &hid.MockDevice{ReportsErr: errors.New("descriptor unavailable")}
	mgr := &hid.MockManager{Devices: g19Devices(), Device: dev}

	err := run(&config.CLI{R: 1, G: 2, B: 3, Inspect: true}, mgr)
	assert.NoError(t, err)
	assert.Equal(t, 1, dev.CloseCalls)
	assert.Empty(t, dev.Sent)
}

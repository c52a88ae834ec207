package g19

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seagrayinc/g19ctl/internal/hid"
)

func TestFindFirstMatchInEnumerationOrder(t *testing.T) {
	mgr := &hid.MockManager{Devices: []hid.Info{
		{Path: "hidraw0", VendorID: 0x046D, ProductID: 0xC52B, Product: "Unifying Receiver"},
		{Path: "hidraw1", VendorID: VendorID, ProductID: ProductID, Product: "G19 interface A"},
		{Path: "hidraw2", VendorID: VendorID, ProductID: ProductID, Product: "G19 interface B"},
	}}

	info, found := Find(mgr, VendorID, ProductID)
	require.True(t, found)
	assert.Equal(t, "hidraw1", info.Path)
	// Find must not open anything.
	assert.Zero(t, mgr.Opens)
}

func TestFindNotFound(t *testing.T) {
	mgr := &hid.MockManager{Devices: []hid.Info{
		{Path: "hidraw0", VendorID: 0x1234, ProductID: 0x5678},
	}}

	_, found := Find(mgr, VendorID, ProductID)
	assert.False(t, found)
}

func TestFindEnumerationErrorIsNotFound(t *testing.T) {
	mgr := &hid.MockManager{ListErr: errors.New("udev unavailable")}

	_, found := Find(mgr, VendorID, ProductID)
	assert.False(t, found)
}

package hid

import (
	"fmt"
	"sort"
)

// Short-item tags from the HID 1.11 spec, pre-shifted to the full prefix
// nibble. Only the items that affect report sizing are interpreted; every
// other item is skipped over by length.
const (
	itemTypeMain   = 0
	itemTypeGlobal = 1

	mainInput         = 0x8
	mainOutput        = 0x9
	mainFeature       = 0xB
	mainCollection    = 0xA
	mainEndCollection = 0xC

	globalReportSize  = 0x7
	globalReportID    = 0x8
	globalReportCount = 0x9
	globalPush        = 0xA
	globalPop         = 0xB

	longItemPrefix = 0xFE
)

type sizingState struct {
	reportSize  uint32 // bits per field
	reportCount uint32
	reportID    byte
}

// ParseReportDescriptor walks a raw HID report descriptor and returns the
// byte length of every report it declares, per kind and report ID. Reported
// lengths include the leading report-ID byte when the descriptor uses
// numbered reports, matching the sizes Windows reports for the same device.
func ParseReportDescriptor(desc []byte) ([]ReportInfo, error) {
	type key struct {
		kind ReportKind
		id   byte
	}
	bits := map[key]uint32{}
	order := []key{}
	numbered := false

	var state sizingState
	var stack []sizingState

	addMain := func(kind ReportKind) {
		k := key{kind: kind, id: state.reportID}
		if _, seen := bits[k]; !seen {
			order = append(order, k)
		}
		bits[k] += state.reportSize * state.reportCount
	}

	for i := 0; i < len(desc); {
		prefix := desc[i]
		i++

		if prefix == longItemPrefix {
			if i >= len(desc) {
				return nil, fmt.Errorf("hid: truncated long item at byte %d", i-1)
			}
			// bDataSize follows the prefix; the item itself is irrelevant here.
			skip := int(desc[i]) + 2
			if i+skip > len(desc) {
				return nil, fmt.Errorf("hid: truncated long item at byte %d", i-1)
			}
			i += skip
			continue
		}

		size := int(prefix & 0x3)
		if size == 3 {
			size = 4
		}
		if i+size > len(desc) {
			return nil, fmt.Errorf("hid: truncated item at byte %d", i-1)
		}

		var data uint32
		for j := 0; j < size; j++ {
			data |= uint32(desc[i+j]) << (8 * j)
		}
		i += size

		tag := prefix >> 4
		switch (prefix >> 2) & 0x3 {
		case itemTypeMain:
			switch tag {
			case mainInput:
				addMain(ReportInput)
			case mainOutput:
				addMain(ReportOutput)
			case mainFeature:
				addMain(ReportFeature)
			case mainCollection, mainEndCollection:
				// Collections do not contribute to report sizes.
			}
		case itemTypeGlobal:
			switch tag {
			case globalReportSize:
				state.reportSize = data
			case globalReportCount:
				state.reportCount = data
			case globalReportID:
				state.reportID = byte(data)
				numbered = true
			case globalPush:
				stack = append(stack, state)
			case globalPop:
				if n := len(stack); n > 0 {
					state = stack[n-1]
					stack = stack[:n-1]
				}
			}
		}
	}

	out := make([]ReportInfo, 0, len(order))
	for _, k := range order {
		length := int(bits[k]+7) / 8
		if numbered {
			length++
		}
		out = append(out, ReportInfo{Kind: k.kind, ID: k.id, Length: length})
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Kind != out[b].Kind {
			return out[a].Kind < out[b].Kind
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

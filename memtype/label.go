package memtype

import (
	"fmt"
	"strconv"
	"strings"
)

// LabelError reports a malformed address label: the "HEX16:suffix" text
// that splits back into an address and a Tag before a write.
type LabelError struct {
	Label string
	Msg   string
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("invalid address label %q: %s", e.Label, e.Msg)
}

// FormatLabel renders addr and tag as the "HEX16:suffix" address label
// used as the Store's external address identity: 16 uppercase hex
// digits, zero-padded, with no "0x" prefix.
func FormatLabel(addr uint64, tag Tag) string {
	return fmt.Sprintf("%016X:%s", addr, tag.Suffix())
}

// ParseLabel is the inverse of FormatLabel: split on the last colon (an
// address never contains one, the suffix never contains one), hex-decode
// the address, and resolve the suffix against the 12-tag enumeration.
func ParseLabel(label string) (addr uint64, tag Tag, err error) {
	i := strings.LastIndexByte(label, ':')
	if i < 0 {
		return 0, 0, &LabelError{Label: label, Msg: "missing ':' separator"}
	}
	addrPart, suffixPart := label[:i], label[i+1:]
	addrPart = strings.TrimPrefix(addrPart, "0x")
	addrPart = strings.TrimPrefix(addrPart, "0X")

	a, parseErr := strconv.ParseUint(addrPart, 16, 64)
	if parseErr != nil {
		return 0, 0, &LabelError{Label: label, Msg: "address is not valid hex"}
	}
	t, ok := ParseSuffix(suffixPart)
	if !ok {
		return 0, 0, &LabelError{Label: label, Msg: "unknown type suffix " + suffixPart}
	}
	return a, t, nil
}

// Package adi models the analog/digital I/O (ADI) ports of a robot brain and
// the legacy three-wire devices plugged into them.  Ports live either on the
// brain itself or on an ADI expander module attached to a smart port.
package adi

import "strconv"

// NumPorts is the number of ADI ports on the brain or on one expander.  An
// expander sits on a smart port no higher than MaxSmartPort, and native calls
// address the brain's own ports as expander InternalExpander.
const (
	NumPorts         uint8 = 8
	MaxSmartPort     uint8 = 21
	InternalExpander uint8 = 22
)

// Port is an ADI port.  Index is 1-based: 1 is port 'A', 8 is port 'H'.  An
// expander of zero means the port is on the brain.
type Port struct {
	index    uint8
	expander uint8
}

// NewPort returns the brain-internal port at index
func NewPort(index uint8) Port {
	return Port{index: index}
}

// NewExpanderPort returns the port at index on the expander plugged into
// smart port expander
func NewExpanderPort(index, expander uint8) Port {
	return Port{index: index, expander: expander}
}

func (p Port) Index() uint8 {
	return p.index
}

// ExpanderIndex returns the smart port of the port's expander, or false if
// the port is on the brain
func (p Port) ExpanderIndex() (uint8, bool) {
	if p.expander == 0 {
		return 0, false
	}
	return p.expander, true
}

// InternalExpanderIndex returns the expander index to hand to native calls.
// Brain ports report InternalExpander.
func (p Port) InternalExpanderIndex() uint8 {
	if p.expander == 0 {
		return InternalExpander
	}
	return p.expander
}

// ConfiguredType asks the driver how the port is currently configured
func (p Port) ConfiguredType(d Driver) (DeviceType, error) {
	v, errno := d.PortGetConfig(p.InternalExpanderIndex(), p.index)
	v, err := bailOn("port config", v, errno)
	if err != nil {
		return DeviceTypeUndefined, err
	}
	return DeviceType(v), nil
}

func (p Port) String() string {
	var name string
	if p.index >= 1 && p.index <= NumPorts {
		name = string(rune('A' + p.index - 1))
	} else {
		name = "?" + strconv.Itoa(int(p.index))
	}
	if p.expander == 0 {
		return name
	}
	return strconv.Itoa(int(p.expander)) + ":" + name
}

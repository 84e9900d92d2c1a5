package adi

import (
	"github.com/merliot/sonar/internal/lock"
)

type slot struct {
	expander uint8
	index    uint8
}

// DeviceInfo describes a registered device
type DeviceInfo struct {
	Type     string
	TypeId   DeviceType
	Ports    []uint8
	Expander uint8 `json:",omitempty"`
}

// Registry tracks which devices claim which ports.  It is safe for concurrent
// use.
type Registry struct {
	mu      lock.Mutex
	devices []Device
	slots   map[slot]Device
}

func NewRegistry() *Registry {
	return &Registry{slots: make(map[slot]Device)}
}

func slotsOf(d Device) []slot {
	expander, ok := d.ExpanderIndex()
	if !ok {
		expander = InternalExpander
	}
	indices := d.PortIndices()
	slots := make([]slot, len(indices))
	for i, index := range indices {
		slots[i] = slot{expander, index}
	}
	return slots
}

// Register claims the device's ports.  It fails with ErrAlreadyInUse if any
// port is claimed by another device.
func (r *Registry) Register(d Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slots := slotsOf(d)
	for _, s := range slots {
		if _, ok := r.slots[s]; ok {
			return ErrAlreadyInUse
		}
	}
	for _, s := range slots {
		r.slots[s] = d
	}
	r.devices = append(r.devices, d)
	return nil
}

// Unregister releases the device's ports
func (r *Registry) Unregister(d Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, dev := range r.devices {
		if dev == d {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			for _, s := range slotsOf(d) {
				delete(r.slots, s)
			}
			return
		}
	}
}

// Lookup returns the device claiming port
func (r *Registry) Lookup(p Port) (Device, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.slots[slot{p.InternalExpanderIndex(), p.Index()}]
	return d, ok
}

// Devices returns the registered devices in registration order
func (r *Registry) Devices() []Device {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Device(nil), r.devices...)
}

func (r *Registry) Describe() []DeviceInfo {
	devices := r.Devices()
	infos := make([]DeviceInfo, len(devices))
	for i, d := range devices {
		expander, _ := d.ExpanderIndex()
		infos[i] = DeviceInfo{
			Type:     d.DeviceType().String(),
			TypeId:   d.DeviceType(),
			Ports:    d.PortIndices(),
			Expander: expander,
		}
	}
	return infos
}

//go:build tinygo

// Package hcsr04 drives ultrasonic sensors wired straight to a board's GPIO
// pins, standing in for the brain's native ADI layer.  Only the brain's own
// ports exist here; there are no expanders.
package hcsr04

import (
	"machine"

	"github.com/merliot/sonar/adi"
	"tinygo.org/x/drivers/hcsr04"
)

// Pins maps ADI port index (1 = 'A') to the board pin wired to it
type Pins map[uint8]machine.Pin

type Brain struct {
	pins    Pins
	config  map[uint8]adi.DeviceType
	owner   map[uint8]int32
	sensors map[int32]*sensor
	next    int32
}

type sensor struct {
	dev  hcsr04.Device
	ping uint8
	echo uint8
}

var _ adi.Driver = (*Brain)(nil)

func New(pins Pins) *Brain {
	return &Brain{
		pins:    pins,
		config:  make(map[uint8]adi.DeviceType),
		owner:   make(map[uint8]int32),
		sensors: make(map[int32]*sensor),
		next:    1,
	}
}

func (b *Brain) UltrasonicInit(expander, ping, echo uint8) (int32, adi.Errno) {
	if expander != adi.InternalExpander {
		return adi.Sentinel, adi.ENODEV
	}
	trigger, ok := b.pins[ping]
	if !ok {
		return adi.Sentinel, adi.ENXIO
	}
	listen, ok := b.pins[echo]
	if !ok || ping == echo {
		return adi.Sentinel, adi.ENXIO
	}

	s := &sensor{dev: hcsr04.New(trigger, listen), ping: ping, echo: echo}
	s.dev.Configure()

	h := b.next
	b.next++
	b.sensors[h] = s
	for _, port := range []uint8{ping, echo} {
		b.config[port] = adi.DeviceTypeLegacyUltrasonic
		b.owner[port] = h
	}
	return h, 0
}

func (b *Brain) UltrasonicGet(handle int32) (int32, adi.Errno) {
	s, ok := b.sensors[handle]
	if !ok {
		return adi.Sentinel, adi.EINVAL
	}
	if b.owner[s.ping] != handle || b.owner[s.echo] != handle {
		return adi.Sentinel, adi.EADDRINUSE
	}
	// driver reads mm; native unit is 10^-4 m
	return s.dev.ReadDistance() * 10, 0
}

func (b *Brain) PortGetConfig(expander, port uint8) (int32, adi.Errno) {
	if expander != adi.InternalExpander {
		return adi.Sentinel, adi.ENODEV
	}
	if _, ok := b.pins[port]; !ok {
		return adi.Sentinel, adi.ENXIO
	}
	if t, ok := b.config[port]; ok {
		return int32(t), 0
	}
	return int32(adi.DeviceTypeUndefined), 0
}

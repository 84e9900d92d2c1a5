// Package sim is an in-memory ADI driver.  It follows the native layer's
// rules for port ranges, ultrasonic port pairing and reconfiguration, so code
// written against it behaves the same on a real brain.
package sim

import (
	"github.com/merliot/sonar/adi"
	"github.com/merliot/sonar/internal/lock"
)

type slot struct {
	expander uint8
	index    uint8
}

type ultrasonic struct {
	ping slot
	echo slot
	raw  int32
}

// Brain simulates a brain and any number of ADI expanders
type Brain struct {
	mu      lock.Mutex
	config  map[slot]adi.DeviceType
	owner   map[slot]int32
	sensors map[int32]*ultrasonic
	next    int32
	pending adi.Errno
}

var _ adi.Driver = (*Brain)(nil)

func New() *Brain {
	return &Brain{
		config:  make(map[slot]adi.DeviceType),
		owner:   make(map[slot]int32),
		sensors: make(map[int32]*ultrasonic),
		next:    1,
	}
}

func validExpander(expander uint8) bool {
	return (expander >= 1 && expander <= adi.MaxSmartPort) ||
		expander == adi.InternalExpander
}

func validPort(index uint8) bool {
	return index >= 1 && index <= adi.NumPorts
}

// fault consumes a pending injected fault
func (b *Brain) fault() adi.Errno {
	errno := b.pending
	b.pending = 0
	return errno
}

// Fail makes the next native call fail with errno
func (b *Brain) Fail(errno adi.Errno) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = errno
}

func (b *Brain) UltrasonicInit(expander, ping, echo uint8) (int32, adi.Errno) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if errno := b.fault(); errno != 0 {
		return adi.Sentinel, errno
	}
	if !validExpander(expander) || !validPort(ping) || !validPort(echo) {
		return adi.Sentinel, adi.ENXIO
	}
	// ping goes on an odd port, echo on the one after it
	if ping%2 == 0 || echo != ping+1 {
		return adi.Sentinel, adi.ENXIO
	}

	h := b.next
	b.next++

	s := &ultrasonic{ping: slot{expander, ping}, echo: slot{expander, echo}}
	for _, sl := range []slot{s.ping, s.echo} {
		b.config[sl] = adi.DeviceTypeLegacyUltrasonic
		b.owner[sl] = h
	}
	b.sensors[h] = s

	return h, 0
}

func (b *Brain) UltrasonicGet(handle int32) (int32, adi.Errno) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if errno := b.fault(); errno != 0 {
		return adi.Sentinel, errno
	}
	s, ok := b.sensors[handle]
	if !ok {
		return adi.Sentinel, adi.EINVAL
	}
	if b.owner[s.ping] != handle || b.owner[s.echo] != handle {
		return adi.Sentinel, adi.EADDRINUSE
	}
	return s.raw, 0
}

func (b *Brain) PortGetConfig(expander, port uint8) (int32, adi.Errno) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if errno := b.fault(); errno != 0 {
		return adi.Sentinel, errno
	}
	if !validExpander(expander) || !validPort(port) {
		return adi.Sentinel, adi.ENXIO
	}
	if t, ok := b.config[slot{expander, port}]; ok {
		return int32(t), 0
	}
	return int32(adi.DeviceTypeUndefined), 0
}

// SetDistance sets what the ultrasonic sensor pinging on port ping of
// expander reads, in 10^-4 m.  It fails if no sensor owns that port.
func (b *Brain) SetDistance(expander, ping uint8, raw int32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	h, ok := b.owner[slot{expander, ping}]
	if !ok {
		return adi.ErrInvalidPort
	}
	s := b.sensors[h]
	if s.ping != (slot{expander, ping}) {
		return adi.ErrInvalidPort
	}
	s.raw = raw
	return nil
}

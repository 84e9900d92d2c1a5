package adi

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

// fakeDriver records native calls and replays canned results
type fakeDriver struct {
	initCalls int
	initArgs  [3]uint8
	handle    int32
	reading   int32
	config    int32
	errno     Errno
}

func (f *fakeDriver) UltrasonicInit(expander, ping, echo uint8) (int32, Errno) {
	f.initCalls++
	f.initArgs = [3]uint8{expander, ping, echo}
	return f.handle, f.errno
}

func (f *fakeDriver) UltrasonicGet(handle int32) (int32, Errno)         { return f.reading, f.errno }
func (f *fakeDriver) PortGetConfig(expander, port uint8) (int32, Errno) { return f.config, f.errno }

func TestPortExpander(t *testing.T) {
	c := qt.New(t)

	p := NewPort(3)
	c.Check(p.Index(), qt.Equals, uint8(3))
	_, ok := p.ExpanderIndex()
	c.Check(ok, qt.IsFalse)
	c.Check(p.InternalExpanderIndex(), qt.Equals, InternalExpander)
	c.Check(p.String(), qt.Equals, "C")

	e := NewExpanderPort(8, 5)
	expander, ok := e.ExpanderIndex()
	c.Check(ok, qt.IsTrue)
	c.Check(expander, qt.Equals, uint8(5))
	c.Check(e.InternalExpanderIndex(), qt.Equals, uint8(5))
	c.Check(e.String(), qt.Equals, "5:H")
}

func TestPortConfiguredType(t *testing.T) {
	c := qt.New(t)

	d := &fakeDriver{config: int32(DeviceTypeDigitalIn)}
	typ, err := NewPort(1).ConfiguredType(d)
	c.Assert(err, qt.IsNil)
	c.Check(typ, qt.Equals, DeviceTypeDigitalIn)

	d = &fakeDriver{config: Sentinel, errno: ENXIO}
	_, err = NewPort(9).ConfiguredType(d)
	c.Check(err, qt.ErrorIs, ErrPortOutOfRange)
}

func TestUltrasonicMismatch(t *testing.T) {
	c := qt.New(t)

	pairs := [][2]Port{
		{NewPort(1), NewExpanderPort(2, 4)},
		{NewExpanderPort(1, 4), NewPort(2)},
		{NewExpanderPort(1, 4), NewExpanderPort(2, 5)},
	}
	for _, pair := range pairs {
		d := &fakeDriver{}
		u, err := NewUltrasonic(d, pair[0], pair[1])
		c.Check(err, qt.ErrorIs, ErrExpanderPortMismatch)
		c.Check(u, qt.IsNil)
		c.Check(d.initCalls, qt.Equals, 0)
	}
}

func TestUltrasonicNew(t *testing.T) {
	c := qt.New(t)

	d := &fakeDriver{handle: 7}
	ping, echo := NewExpanderPort(3, 11), NewExpanderPort(4, 11)
	u, err := NewUltrasonic(d, ping, echo)
	c.Assert(err, qt.IsNil)
	c.Check(d.initCalls, qt.Equals, 1)
	c.Check(d.initArgs, qt.Equals, [3]uint8{11, 3, 4})
	c.Check(u.PingPort(), qt.Equals, ping)
	c.Check(u.EchoPort(), qt.Equals, echo)

	p, e := u.PortIndex()
	c.Check(p, qt.Equals, uint8(3))
	c.Check(e, qt.Equals, uint8(4))
	c.Check(u.PortIndices(), qt.DeepEquals, []uint8{3, 4})
	expander, ok := u.ExpanderIndex()
	c.Check(ok, qt.IsTrue)
	c.Check(expander, qt.Equals, uint8(11))
	c.Check(u.DeviceType(), qt.Equals, DeviceTypeLegacyUltrasonic)
}

func TestUltrasonicBrainPorts(t *testing.T) {
	c := qt.New(t)

	d := &fakeDriver{}
	u, err := NewUltrasonic(d, NewPort(1), NewPort(2))
	c.Assert(err, qt.IsNil)
	c.Check(d.initArgs, qt.Equals, [3]uint8{InternalExpander, 1, 2})
	_, ok := u.ExpanderIndex()
	c.Check(ok, qt.IsFalse)
}

func TestUltrasonicInitFails(t *testing.T) {
	c := qt.New(t)

	d := &fakeDriver{handle: Sentinel, errno: EACCES}
	_, err := NewUltrasonic(d, NewPort(1), NewPort(2))
	c.Check(err, qt.ErrorIs, ErrAlreadyInUse)
	var nerr *NativeError
	c.Assert(err, qt.ErrorAs, &nerr)
	c.Check(nerr.Op, qt.Equals, "ultrasonic init")
	c.Check(nerr.Errno, qt.Equals, EACCES)
}

func TestUltrasonicDistance(t *testing.T) {
	c := qt.New(t)

	d := &fakeDriver{}
	u, err := NewUltrasonic(d, NewPort(5), NewPort(6))
	c.Assert(err, qt.IsNil)

	for _, raw := range []int32{0, 1, 9, 10, 12345, -1, Sentinel - 1} {
		d.reading = raw
		r, err := u.RawDistance()
		c.Assert(err, qt.IsNil)
		c.Check(r, qt.Equals, raw)
		mm, err := u.Distance()
		c.Assert(err, qt.IsNil)
		c.Check(mm, qt.Equals, float64(raw)/10)
	}
}

func TestUltrasonicReadFails(t *testing.T) {
	c := qt.New(t)

	d := &fakeDriver{}
	u, err := NewUltrasonic(d, NewPort(5), NewPort(6))
	c.Assert(err, qt.IsNil)

	d.reading, d.errno = Sentinel, EADDRINUSE
	_, err = u.RawDistance()
	c.Check(err, qt.ErrorIs, ErrInvalidPort)
	_, err = u.Distance()
	c.Check(err, qt.ErrorIs, ErrInvalidPort)
}

func TestNativeErrorUnknownErrno(t *testing.T) {
	c := qt.New(t)

	err := &NativeError{Op: "ultrasonic get", Errno: 99}
	c.Check(err.Unwrap(), qt.IsNil)
	c.Check(err.Error(), qt.Equals, "adi ultrasonic get: native error errno 99")
}

func TestDeviceTypeString(t *testing.T) {
	c := qt.New(t)
	c.Check(DeviceTypeLegacyUltrasonic.String(), qt.Equals, "legacy_ultrasonic")
	c.Check(DeviceType(42).String(), qt.Equals, "device_type(42)")
}

package sim

import (
	"fmt"
	"sync"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/merliot/sonar/adi"
)

func TestUltrasonicRoundTrip(t *testing.T) {
	c := qt.New(t)

	b := New()
	u, err := adi.NewUltrasonic(b, adi.NewExpanderPort(3, 7), adi.NewExpanderPort(4, 7))
	c.Assert(err, qt.IsNil)

	c.Assert(b.SetDistance(7, 3, 1525), qt.IsNil)
	raw, err := u.RawDistance()
	c.Assert(err, qt.IsNil)
	c.Check(raw, qt.Equals, int32(1525))
	mm, err := u.Distance()
	c.Assert(err, qt.IsNil)
	c.Check(mm, qt.Equals, 152.5)

	typ, err := adi.NewExpanderPort(4, 7).ConfiguredType(b)
	c.Assert(err, qt.IsNil)
	c.Check(typ, qt.Equals, adi.DeviceTypeLegacyUltrasonic)
	typ, err = adi.NewPort(4).ConfiguredType(b)
	c.Assert(err, qt.IsNil)
	c.Check(typ, qt.Equals, adi.DeviceTypeUndefined)
}

func TestUltrasonicBadPorts(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		ping, echo adi.Port
	}{
		// ping on an even port
		{adi.NewPort(2), adi.NewPort(3)},
		// echo not next to ping
		{adi.NewPort(1), adi.NewPort(3)},
		// past 'H'
		{adi.NewPort(9), adi.NewPort(10)},
		// before 'A'
		{adi.NewPort(0), adi.NewPort(1)},
		// no such smart port
		{adi.NewExpanderPort(1, 23), adi.NewExpanderPort(2, 23)},
	}
	for _, test := range tests {
		_, err := adi.NewUltrasonic(New(), test.ping, test.echo)
		c.Check(err, qt.ErrorIs, adi.ErrPortOutOfRange, qt.Commentf("%s/%s", test.ping, test.echo))
	}
}

func TestUltrasonicReconfigured(t *testing.T) {
	c := qt.New(t)

	b := New()
	first, err := adi.NewUltrasonic(b, adi.NewPort(1), adi.NewPort(2))
	c.Assert(err, qt.IsNil)
	second, err := adi.NewUltrasonic(b, adi.NewPort(1), adi.NewPort(2))
	c.Assert(err, qt.IsNil)

	_, err = first.RawDistance()
	c.Check(err, qt.ErrorIs, adi.ErrInvalidPort)
	_, err = second.RawDistance()
	c.Check(err, qt.IsNil)
}

func TestFault(t *testing.T) {
	c := qt.New(t)

	b := New()
	b.Fail(adi.EACCES)
	_, err := adi.NewUltrasonic(b, adi.NewPort(1), adi.NewPort(2))
	c.Check(err, qt.ErrorIs, adi.ErrAlreadyInUse)

	// the fault is consumed
	u, err := adi.NewUltrasonic(b, adi.NewPort(1), adi.NewPort(2))
	c.Assert(err, qt.IsNil)
	b.Fail(adi.ENODEV)
	_, err = u.Distance()
	c.Check(err, qt.ErrorIs, adi.ErrPortCannotBeConfigured)
	_, err = u.Distance()
	c.Check(err, qt.IsNil)
}

func TestSetDistanceUnknown(t *testing.T) {
	c := qt.New(t)

	b := New()
	c.Check(b.SetDistance(adi.InternalExpander, 1, 10), qt.ErrorIs, adi.ErrInvalidPort)
	_, err := adi.NewUltrasonic(b, adi.NewPort(1), adi.NewPort(2))
	c.Assert(err, qt.IsNil)
	// echo port is not the ping port
	c.Check(b.SetDistance(adi.InternalExpander, 2, 10), qt.ErrorIs, adi.ErrInvalidPort)
	c.Check(b.SetDistance(adi.InternalExpander, 1, 10), qt.IsNil)
}

func TestConcurrentFailuresKeepTheirErrno(t *testing.T) {
	c := qt.New(t)

	b := New()
	var wg sync.WaitGroup
	errs := make(chan error, 400)
	for i := 0; i < 200; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errno := b.UltrasonicGet(999)
			if errno != adi.EINVAL {
				errs <- fmt.Errorf("get on unknown handle: %s", errno)
			}
		}()
		go func() {
			defer wg.Done()
			_, errno := b.UltrasonicInit(adi.InternalExpander, 2, 3)
			if errno != adi.ENXIO {
				errs <- fmt.Errorf("init on even ping port: %s", errno)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		c.Error(err)
	}
}

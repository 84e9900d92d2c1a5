package adi

import "math"

// Sentinel is the value native calls return on failure
const Sentinel int32 = math.MaxInt32

// Driver is the set of native ADI primitives.  Each call returns its value
// and an errno; the errno is only meaningful when the value is Sentinel.
type Driver interface {
	// UltrasonicInit configures ping and echo on expander for an ultrasonic
	// sensor and returns its handle
	UltrasonicInit(expander, ping, echo uint8) (int32, Errno)
	// UltrasonicGet returns the latest reading of the sensor in 10^-4 m
	UltrasonicGet(handle int32) (int32, Errno)
	// PortGetConfig returns the DeviceType the port is configured as
	PortGetConfig(expander, port uint8) (int32, Errno)
}

// bailOn turns a Sentinel return into a *NativeError
func bailOn(op string, v int32, errno Errno) (int32, error) {
	if v == Sentinel {
		return v, &NativeError{Op: op, Errno: errno}
	}
	return v, nil
}

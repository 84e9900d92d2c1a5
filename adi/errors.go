package adi

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrExpanderPortMismatch   = errors.New("ports are on different expanders")
	ErrAlreadyInUse           = errors.New("another resource is currently accessing the ADI")
	ErrInvalidPort            = errors.New("port was reconfigured or is not configured for this device")
	ErrPortOutOfRange         = errors.New("port index out of range")
	ErrPortCannotBeConfigured = errors.New("port cannot be configured as this device")
	ErrInvalidValue           = errors.New("invalid value")
)

// Errno is a native error number.  Values follow newlib, which is what the
// native layer reports through.
type Errno int32

const (
	ENXIO      Errno = 6
	EACCES     Errno = 13
	ENODEV     Errno = 19
	EINVAL     Errno = 22
	EADDRINUSE Errno = 112
)

var errnoNames = map[Errno]string{
	ENXIO:      "ENXIO",
	EACCES:     "EACCES",
	ENODEV:     "ENODEV",
	EINVAL:     "EINVAL",
	EADDRINUSE: "EADDRINUSE",
}

func (e Errno) String() string {
	if name, ok := errnoNames[e]; ok {
		return name
	}
	return "errno " + strconv.Itoa(int(e))
}

// NativeError is returned when a native call fails.  It unwraps to the
// package error matching Errno, if there is one.
type NativeError struct {
	Op    string
	Errno Errno
}

func (e *NativeError) Error() string {
	if err := e.Unwrap(); err != nil {
		return fmt.Sprintf("adi %s: %s (%s)", e.Op, err, e.Errno)
	}
	return fmt.Sprintf("adi %s: native error %s", e.Op, e.Errno)
}

func (e *NativeError) Unwrap() error {
	switch e.Errno {
	case EACCES:
		return ErrAlreadyInUse
	case EADDRINUSE:
		return ErrInvalidPort
	case ENXIO:
		return ErrPortOutOfRange
	case ENODEV:
		return ErrPortCannotBeConfigured
	case EINVAL:
		return ErrInvalidValue
	}
	return nil
}

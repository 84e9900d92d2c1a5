//go:build !tinygo

// Package lock picks the mutex implementation for the build.  Host builds get
// deadlock detection; tinygo builds get plain sync.
package lock

import (
	sync "github.com/sasha-s/go-deadlock"
)

type Mutex struct {
	sync.Mutex
}

type RWMutex struct {
	sync.RWMutex
}

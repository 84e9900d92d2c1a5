//go:build tinygo

package lock

import (
	"sync"
)

type Mutex struct {
	sync.Mutex
}

type RWMutex struct {
	sync.RWMutex
}

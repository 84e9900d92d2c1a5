package sonar

import (
	"fmt"

	"github.com/merliot/sonar/internal/lock"
)

// Bus joins a node to its sockets.  Packets arriving on any socket are handed
// to the node's subscriber for the packet's path; subscribers answer with
// Reply or fan out with Broadcast.
type Bus struct {
	socketsMu  lock.RWMutex
	sockets    map[Socketer]struct{}
	handlersMu lock.RWMutex
	handlers   Subscribers
}

// NewBus returns a bus routing packets to subs
func NewBus(subs Subscribers) *Bus {
	b := &Bus{
		sockets:  make(map[Socketer]struct{}),
		handlers: make(Subscribers),
	}
	for path, handler := range subs {
		b.Handle(path, handler)
	}
	return b
}

// Handle sets the packet handler for a packet path.  Returns false if the
// path already has a handler.
func (b *Bus) Handle(path string, handler func(*Packet)) bool {
	if handler == nil {
		panic("handler is nil")
	}
	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()
	if _, ok := b.handlers[path]; ok {
		return false
	}
	b.handlers[path] = handler
	return true
}

// Unhandle removes the packet handler for the packet path
func (b *Bus) Unhandle(path string) {
	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()
	delete(b.handlers, path)
}

// plugin the socket.  A broadcast-ready socket is attached: the node sees a
// PathAttached packet from it and answers with its state.
func (b *Bus) plugin(s Socketer) {
	b.socketsMu.Lock()
	b.sockets[s] = struct{}{}
	b.socketsMu.Unlock()

	if s.TestFlag(SocketFlagBcast) {
		b.receive(newPacket(b, s, PathAttached))
	}
}

func (b *Bus) unplug(s Socketer) {
	b.socketsMu.Lock()
	defer b.socketsMu.Unlock()
	delete(b.sockets, s)
}

// broadcast packet to all broadcast-ready sockets, skipping the source
func (b *Bus) broadcast(pkt *Packet) {
	b.socketsMu.RLock()
	defer b.socketsMu.RUnlock()
	for sock := range b.sockets {
		if pkt.src == sock || !sock.TestFlag(SocketFlagBcast) {
			continue
		}
		if err := sock.Send(pkt); err != nil {
			fmt.Printf("Bcast error %s: %s\r\n", sock, err.Error())
		}
	}
}

// receive hands the packet to the handler for its path.  Packets for paths
// nobody handles are dropped.
func (b *Bus) receive(pkt *Packet) {
	path := pkt.Path()
	b.handlersMu.RLock()
	handler, ok := b.handlers[path]
	b.handlersMu.RUnlock()
	if !ok {
		fmt.Printf("No handler for %q from %s\r\n", path, pkt.src)
		return
	}
	handler(pkt)
}

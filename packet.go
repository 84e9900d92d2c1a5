package sonar

import (
	"encoding/json"
	"fmt"
)

// Paths every node speaks.  A node answers PathGetState and PathAttached with
// a PathState packet carrying its full state, and pushes PathUpdate packets
// when a reading changes.
const (
	PathAnnounce = "announce"
	PathAttached = "attached"
	PathGetState = "get/state"
	PathState    = "state"
	PathUpdate   = "update"
)

// Packet is sent and received on a bus via a socket.  The message is JSON
// with a Path field naming the subscriber it is for.
type Packet struct {
	bus     *Bus
	src     Socketer
	message []byte
}

// newPacket returns a packet for path that appears to come from src
func newPacket(bus *Bus, src Socketer, path string) *Packet {
	pkt := &Packet{bus: bus, src: src}
	return pkt.Marshal(&NodeMsg{Path: path})
}

func (p *Packet) String() string {
	return string(p.message)
}

// Path returns the message's Path field, or "" if there isn't one
func (p *Packet) Path() string {
	var msg NodeMsg
	json.Unmarshal(p.message, &msg)
	return msg.Path
}

// Local is true if the node itself produced the packet through its Injector,
// rather than a peer sending it in over the network
func (p *Packet) Local() bool {
	_, ok := p.src.(*Injector)
	return ok
}

// Reply sends the packet back to sender
func (p *Packet) Reply() *Packet {
	if p.src == nil {
		fmt.Printf("Can't reply to sender: source is nil\r\n")
		return p
	}
	fmt.Printf("Reply: src %s packet %s\r\n", p.src, p)
	if err := p.src.Send(p); err != nil {
		fmt.Printf("Reply error %s: %s\r\n", p.src, err.Error())
	}
	return p
}

// Broadcast the packet to all other broadcast-ready sockets on the bus.  The
// source socket is excluded.
func (p *Packet) Broadcast() *Packet {
	if p.bus == nil {
		fmt.Printf("Can't broadcast packet: bus is nil\r\n")
		return p
	}
	p.bus.broadcast(p)
	return p
}

// Unmarshal the packet message as JSON into v
func (p *Packet) Unmarshal(v any) *Packet {
	err := json.Unmarshal(p.message, v)
	if err != nil {
		fmt.Printf("JSON unmarshal error %s\r\n", err.Error())
	}
	return p
}

// Marshal the packet message as JSON from v
func (p *Packet) Marshal(v any) *Packet {
	var err error
	p.message, err = json.Marshal(v)
	if err != nil {
		fmt.Printf("JSON marshal error %s\r\n", err.Error())
	}
	return p
}

// Package sonar connects sensor nodes to each other and to browsers.  A node
// produces packets from its Run loop through an Injector; the packets travel a
// Bus to websocket and MQTT sockets, and packets arriving on those sockets are
// routed by path to the node's Subscribers.
package sonar

type Subscribers map[string]func(*Packet)

type Noder interface {
	Subscribers() Subscribers
	Announce() *Packet
	Run(*Injector)
	Id() string
	Model() string
	Name() string
	String() string
	SetFlag(uint32)
	TestFlag(uint32) bool
}

type NodeMsg struct {
	Path string
}

type NodeMsgAnnounce struct {
	Path  string
	Id    string
	Model string
	Name  string
}

type Node struct {
	id    string
	model string
	name  string
	flags uint32
}

func NewNode(id, model, name string) Node {
	if !ValidId(id) || !ValidId(model) || !ValidId(name) {
		panic("something invalid: id = \"" + id + "\", model = \"" +
			model + "\", name = \"" + name + "\"")
	}
	return Node{id: id, model: model, name: name}
}

const (
	// Node is running on real hardware rather than mirroring a remote node
	NodeFlagMetal uint32 = 1 << iota
)

func (n *Node) Subscribers() Subscribers { return nil }
func (n *Node) Run(*Injector)             { select {} }
func (n *Node) Id() string                { return n.id }
func (n *Node) Model() string             { return n.model }
func (n *Node) Name() string              { return n.name }
func (n *Node) SetFlag(flag uint32)       { n.flags |= flag }
func (n *Node) TestFlag(flag uint32) bool { return (n.flags & flag) != 0 }
func (n *Node) IsMetal() bool             { return n.TestFlag(NodeFlagMetal) }

func (n *Node) String() string {
	return "[Id: " + n.id + ", Model: " + n.model + ", Name: " + n.name + "]"
}

func (n *Node) Announce() *Packet {
	var pkt Packet
	var ann = NodeMsgAnnounce{PathAnnounce, n.id, n.model, n.name}
	return pkt.Marshal(&ann)
}

// A valid ID is a non-empty string with only [a-z], [A-Z], [0-9], or
// underscore characters.
func ValidId(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') &&
			(r < 'A' || r > 'Z') &&
			(r < '0' || r > '9') &&
			(r != '_') {
			return false
		}
	}
	return len(s) > 0
}

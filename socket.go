package sonar

// Socketer is one end of a connection plugged into a bus
type Socketer interface {
	// Close the connection.  The socket unplugs itself once the
	// connection is down.
	Close()
	// Send the pkt down the connection
	Send(*Packet) error
	String() string
	SetFlag(uint32)
	TestFlag(uint32) bool
}

const (
	// SocketFlagBcast marks a socket that wants the node's state: it is
	// sent the node's state when it plugs in, and every broadcast after.
	SocketFlagBcast uint32 = 1 << iota
)

// socket holds what every Socketer shares; each socket kind supplies its own
// Send and Close
type socket struct {
	name  string
	flags uint32
	bus   *Bus
}

func (s *socket) String() string            { return s.name }
func (s *socket) SetFlag(flag uint32)       { s.flags |= flag }
func (s *socket) TestFlag(flag uint32) bool { return (s.flags & flag) != 0 }

package sonar

// Injector is the node's own socket on the bus.  Packets the node builds in
// its Run loop enter the bus through Inject; replies to them go nowhere.
type Injector struct {
	socket
}

func NewInjector(name string, bus *Bus) *Injector {
	i := &Injector{socket{name: name, bus: bus}}
	bus.plugin(i)
	return i
}

func (i *Injector) Close()                 {}
func (i *Injector) Send(pkt *Packet) error { return nil }

func (i *Injector) Inject(pkt *Packet) {
	pkt.bus, pkt.src = i.bus, i
	i.bus.receive(pkt)
}

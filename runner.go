package sonar

// Runner runs a node on hardware with no network attached
type Runner struct {
	node     Noder
	injector *Injector
}

func NewRunner(node Noder) *Runner {
	bus := NewBus(node.Subscribers())
	return &Runner{
		node:     node,
		injector: NewInjector("runner injector", bus),
	}
}

func (r *Runner) Run() {
	r.node.SetFlag(NodeFlagMetal)
	r.node.Run(r.injector)
}

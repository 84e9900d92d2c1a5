package ranger

import (
	"embed"
	"fmt"
	"net/http"
	"time"

	"github.com/merliot/sonar"
	"github.com/merliot/sonar/adi"
	"github.com/merliot/sonar/internal/lock"
)

//go:embed index.html
var fs embed.FS

const defaultPeriodMs = 100

// Ranger is a node reporting the distance seen by one ultrasonic sensor
type Ranger struct {
	sonar.Node
	sonar.NodeMsg
	Ping     uint8
	Echo     uint8
	Expander uint8 `json:",omitempty"`
	PeriodMs uint32
	Mm       float64
	Raw      int32
	Err      string `json:",omitempty"`
	sensor   *adi.Ultrasonic
	registry *adi.Registry
	mu       lock.Mutex
}

func New(id, model, name string) sonar.Noder {
	fmt.Printf("NEW RANGER\r\n")
	return &Ranger{
		Node:     sonar.NewNode(id, model, name),
		Ping:     1,
		Echo:     2,
		PeriodMs: defaultPeriodMs,
	}
}

func (r *Ranger) ports() (ping, echo adi.Port) {
	if r.Expander == 0 {
		return adi.NewPort(r.Ping), adi.NewPort(r.Echo)
	}
	return adi.NewExpanderPort(r.Ping, r.Expander), adi.NewExpanderPort(r.Echo, r.Expander)
}

// Configure sets up the sensor on the Ping and Echo ports through driver d,
// and claims the ports in reg.  The previous sensor, if any, gives up its
// ports first and gets them back if the new setup fails.
func (r *Ranger) Configure(d adi.Driver, reg *adi.Registry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, oldReg := r.sensor, r.registry
	if old != nil && oldReg != nil {
		oldReg.Unregister(old)
	}
	restore := func() {
		if old != nil && oldReg != nil {
			oldReg.Register(old)
		}
	}

	ping, echo := r.ports()
	sensor, err := adi.NewUltrasonic(d, ping, echo)
	if err != nil {
		restore()
		return fmt.Errorf("configuring ultrasonic on %s/%s: %w", ping, echo, err)
	}
	if err := reg.Register(sensor); err != nil {
		restore()
		return fmt.Errorf("registering ultrasonic on %s/%s: %w", ping, echo, err)
	}
	r.sensor, r.registry = sensor, reg
	return nil
}

// Sample reads the sensor once and reports whether the reading (or the error)
// changed
func (r *Ranger) Sample() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sensor == nil {
		return r.setErr("sensor not configured")
	}

	raw, err := r.sensor.RawDistance()
	if err != nil {
		return r.setErr(err.Error())
	}

	changed := raw != r.Raw || r.Err != ""
	r.Raw = raw
	r.Mm = float64(raw) / 10.0
	r.Err = ""
	return changed
}

func (r *Ranger) setErr(msg string) bool {
	if r.Err == msg {
		return false
	}
	r.Err = msg
	return true
}

func (r *Ranger) period() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.PeriodMs == 0 {
		return defaultPeriodMs * time.Millisecond
	}
	return time.Duration(r.PeriodMs) * time.Millisecond
}

// marshal the ranger state into pkt under path
func (r *Ranger) marshal(pkt *sonar.Packet, path string) *sonar.Packet {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Path = path
	return pkt.Marshal(r)
}

// saveState mirrors a peer's state.  The node driving the sensor owns its
// state and never takes it from the wire.
func (r *Ranger) saveState(pkt *sonar.Packet) {
	if r.IsMetal() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pkt.Unmarshal(r)
}

func (r *Ranger) getState(pkt *sonar.Packet) {
	r.marshal(pkt, sonar.PathState).Reply()
}

// update fans out readings taken by Run.  On the metal node only locally
// injected updates count; one arriving from a peer is dropped.
func (r *Ranger) update(pkt *sonar.Packet) {
	if r.IsMetal() {
		if !pkt.Local() {
			return
		}
	} else {
		r.saveState(pkt)
	}
	pkt.Broadcast()
}

type devicesMsg struct {
	Path    string
	Devices []adi.DeviceInfo
}

func (r *Ranger) getDevices(pkt *sonar.Packet) {
	msg := devicesMsg{Path: "devices"}
	r.mu.Lock()
	if r.registry != nil {
		msg.Devices = r.registry.Describe()
	}
	r.mu.Unlock()
	pkt.Marshal(&msg).Reply()
}

func (r *Ranger) Subscribers() sonar.Subscribers {
	return sonar.Subscribers{
		sonar.PathState:    r.saveState,
		sonar.PathGetState: r.getState,
		sonar.PathAttached: r.getState,
		sonar.PathUpdate:   r.update,
		"get/devices":      r.getDevices,
	}
}

func (r *Ranger) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	http.FileServer(http.FS(fs)).ServeHTTP(w, req)
}

func (r *Ranger) Run(i *sonar.Injector) {
	ticker := time.NewTicker(r.period())
	defer ticker.Stop()

	for {
		if r.Sample() {
			var pkt sonar.Packet
			i.Inject(r.marshal(&pkt, sonar.PathUpdate))
		}
		<-ticker.C
	}
}

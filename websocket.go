package sonar

import (
	"fmt"
	"strconv"
	"time"

	"github.com/merliot/sonar/internal/lock"
	"golang.org/x/net/websocket"
)

// wsSocket is a browser or peer attached at /ws/.  Readings only go out when
// they change, so a quiet sensor would leave the client with nothing to show
// it is still alive; the heartbeat pushes the node's state whenever the
// socket has been silent for a full period.
type wsSocket struct {
	socket
	mu       lock.Mutex
	conn     *websocket.Conn
	period   time.Duration
	lastSent time.Time
}

const (
	heartbeatDefault = 10 * time.Second
	heartbeatMin     = time.Second
	pingMsg          = "ping"
	pongMsg          = "pong"
)

func newWsSocket(conn *websocket.Conn, bus *Bus) *wsSocket {
	req := conn.Request()
	w := &wsSocket{conn: conn, period: heartbeatDefault}
	w.socket = socket{"ws:" + req.RemoteAddr, SocketFlagBcast, bus}

	/* param period, in seconds */
	if secs, err := strconv.Atoi(req.URL.Query().Get("period")); err == nil {
		w.period = time.Duration(secs) * time.Second
		if w.period < heartbeatMin {
			w.period = heartbeatMin
		}
	}

	return w
}

func (w *wsSocket) Close() {
	w.conn.Close()
}

func (w *wsSocket) Send(pkt *Packet) error {
	return w.send(pkt.String())
}

func (w *wsSocket) send(msg string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastSent = time.Now()
	return websocket.Message.Send(w.conn, msg)
}

func (w *wsSocket) quiet() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Since(w.lastSent) >= w.period
}

func (w *wsSocket) heartbeat(done <-chan struct{}) {
	ticker := time.NewTicker(w.period)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if w.quiet() {
				w.bus.receive(newPacket(w.bus, w, PathGetState))
			}
		}
	}
}

// serve runs until the connection drops
func (w *wsSocket) serve() {
	fmt.Printf("Connecting %s\r\n", w)
	w.bus.plugin(w)
	defer w.bus.unplug(w)

	done := make(chan struct{})
	defer close(done)
	go w.heartbeat(done)

	for {
		var msg string
		if err := websocket.Message.Receive(w.conn, &msg); err != nil {
			fmt.Printf("Disconnecting %s: %s\r\n", w, err.Error())
			return
		}
		if msg == pingMsg {
			if err := w.send(pongMsg); err != nil {
				fmt.Printf("Error sending pong, disconnecting %s: %s\r\n", w, err.Error())
				return
			}
			continue
		}
		w.bus.receive(&Packet{bus: w.bus, src: w, message: []byte(msg)})
	}
}

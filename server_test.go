package sonar

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"golang.org/x/net/websocket"
)

type testNode struct {
	Node
	NodeMsg
	Count int
}

func (n *testNode) getState(pkt *Packet) {
	n.Path = PathState
	pkt.Marshal(n).Reply()
}

func (n *testNode) Subscribers() Subscribers {
	return Subscribers{
		PathGetState: n.getState,
		PathAttached: n.getState,
	}
}

func (n *testNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, "hello from "+n.Name())
}

func newTestServer(c *qt.C) (*Server, *httptest.Server) {
	n := &testNode{Node: NewNode("t1", "test", "bench"), Count: 7}
	s := NewServer(n)
	ts := httptest.NewServer(s.Handler)
	c.Cleanup(ts.Close)
	return s, ts
}

func TestServeUI(t *testing.T) {
	c := qt.New(t)

	_, ts := newTestServer(c)
	resp, err := http.Get(ts.URL + "/")
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
	c.Check(string(body), qt.Equals, "hello from bench")
}

func TestBasicAuth(t *testing.T) {
	c := qt.New(t)

	s, ts := newTestServer(c)
	s.BasicAuth("user", "passwd")

	resp, err := http.Get(ts.URL + "/")
	c.Assert(err, qt.IsNil)
	resp.Body.Close()
	c.Check(resp.StatusCode, qt.Equals, http.StatusUnauthorized)
	c.Check(resp.Header.Get("WWW-Authenticate"), qt.Contains, "Basic")

	req, _ := http.NewRequest("GET", ts.URL+"/", nil)
	req.SetBasicAuth("user", "wrong")
	resp, err = http.DefaultClient.Do(req)
	c.Assert(err, qt.IsNil)
	resp.Body.Close()
	c.Check(resp.StatusCode, qt.Equals, http.StatusUnauthorized)

	req.SetBasicAuth("user", "passwd")
	resp, err = http.DefaultClient.Do(req)
	c.Assert(err, qt.IsNil)
	resp.Body.Close()
	c.Check(resp.StatusCode, qt.Equals, http.StatusOK)
}

func dialWebSocket(c *qt.C, ts *httptest.Server, query string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + query
	conn, err := websocket.Dial(url, "", "http://localhost/")
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() { conn.Close() })
	return conn
}

func receiveState(c *qt.C, conn *websocket.Conn) testNode {
	var msg string
	c.Assert(websocket.Message.Receive(conn, &msg), qt.IsNil)
	var state testNode
	(&Packet{message: []byte(msg)}).Unmarshal(&state)
	return state
}

func TestWebSocketState(t *testing.T) {
	c := qt.New(t)

	_, ts := newTestServer(c)
	conn := dialWebSocket(c, ts, "")

	// state is pushed as soon as the socket attaches
	state := receiveState(c, conn)
	c.Check(state.Path, qt.Equals, PathState)
	c.Check(state.Count, qt.Equals, 7)

	c.Assert(websocket.Message.Send(conn, "ping"), qt.IsNil)
	var reply string
	c.Assert(websocket.Message.Receive(conn, &reply), qt.IsNil)
	c.Check(reply, qt.Equals, "pong")

	c.Assert(websocket.Message.Send(conn, `{"Path":"get/state"}`), qt.IsNil)
	state = receiveState(c, conn)
	c.Check(state.Path, qt.Equals, PathState)
	c.Check(state.Count, qt.Equals, 7)
}

func TestWebSocketHeartbeat(t *testing.T) {
	c := qt.New(t)

	_, ts := newTestServer(c)
	conn := dialWebSocket(c, ts, "?period=1")
	receiveState(c, conn)

	// a quiet socket gets the state again after a period
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	start := time.Now()
	state := receiveState(c, conn)
	c.Check(state.Path, qt.Equals, PathState)
	c.Check(time.Since(start) >= 500*time.Millisecond, qt.IsTrue)
}

package sonar

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"golang.org/x/net/websocket"
)

// Server serves a node: its web UI at / and websocket clients at /ws/
type Server struct {
	http.Server
	node     Noder
	bus      *Bus
	injector *Injector
	user     string
	passwd   string
}

func NewServer(node Noder) *Server {
	var s Server

	s.node = node
	s.bus = NewBus(node.Subscribers())
	s.injector = NewInjector("server injector", s.bus)

	mux := http.NewServeMux()
	mux.Handle("/ws/", websocket.Server{Handler: s.serveWebSocket})
	if h, ok := node.(http.Handler); ok {
		mux.Handle("/", h)
	}
	s.Handler = s.basicAuth(mux)

	return &s
}

// BasicAuth turns on HTTP basic authentication for every request
func (s *Server) BasicAuth(user, passwd string) {
	s.user, s.passwd = user, passwd
}

// Run runs the node.  It does not return.
func (s *Server) Run() {
	s.node.SetFlag(NodeFlagMetal)
	s.node.Run(s.injector)
}

func (s *Server) serveWebSocket(conn *websocket.Conn) {
	newWsSocket(conn, s.bus).serve()
}

func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, r *http.Request) {

		// skip basic authentication if no user
		if s.user == "" {
			next.ServeHTTP(writer, r)
			return
		}

		ruser, rpasswd, ok := r.BasicAuth()

		if ok {
			userHash := sha256.Sum256([]byte(s.user))
			passHash := sha256.Sum256([]byte(s.passwd))
			ruserHash := sha256.Sum256([]byte(ruser))
			rpassHash := sha256.Sum256([]byte(rpasswd))

			// https://www.alexedwards.net/blog/basic-authentication-in-go
			userMatch := (subtle.ConstantTimeCompare(userHash[:], ruserHash[:]) == 1)
			passMatch := (subtle.ConstantTimeCompare(passHash[:], rpassHash[:]) == 1)

			if userMatch && passMatch {
				next.ServeHTTP(writer, r)
				return
			}
		}

		writer.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
		http.Error(writer, "Unauthorized", http.StatusUnauthorized)
	})
}

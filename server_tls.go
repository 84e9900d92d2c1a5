//go:build !tinygo

package sonar

import (
	"golang.org/x/crypto/acme/autocert"
)

// ServeTLS serves on :443 with a certificate from Let's Encrypt for host
func (s *Server) ServeTLS(host string) error {
	return s.Serve(autocert.NewListener(host))
}

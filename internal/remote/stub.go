//go:build !linux

package remote

// Server is a no-op on non-Linux platforms.
type Server struct{}

// NewServer returns a stub server that does nothing.
func NewServer(_ *Bridge, _ StatusSource) (*Server, error) {
	return &Server{}, nil
}

// Close is a no-op on non-Linux platforms.
func (s *Server) Close() error {
	return nil
}

package remote

import (
	"bufio"
	"errors"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Server answers list and get requests from the files in Dir.
type Server struct {
	Dir string

	mutex    sync.Mutex
	listener net.Listener
	closed   bool
	conns    sync.WaitGroup
}

// Serve accepts connections on l until Close is called, then waits for open
// connections to finish.
func (s *Server) Serve(l net.Listener) error {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		l.Close()
		return nil
	}
	s.listener = l
	s.mutex.Unlock()

	log.Printf("Serving %s on %s", s.Dir, l.Addr())
	defer s.conns.Wait()
	for {
		conn, err := l.Accept()
		if err != nil {
			s.mutex.Lock()
			closed := s.closed
			s.mutex.Unlock()
			if closed {
				return nil
			}
			return err
		}
		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handle(conn)
		}()
	}
}

// Close stops Serve.
func (s *Server) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(30 * time.Second))

	// Request ends at a newline or at the client's half-close
	request, err := bufio.NewReader(io.LimitReader(conn, 4096)).ReadString('\n')
	if err != nil && err != io.EOF {
		log.Printf("Request from %s: %v", conn.RemoteAddr(), err)
		return
	}
	request = strings.TrimSpace(request)

	var response []byte
	switch {
	case request == "list":
		response, err = s.list()
	case strings.HasPrefix(request, "get "):
		name := filepath.Base(strings.TrimSpace(strings.TrimPrefix(request, "get ")))
		response, err = os.ReadFile(filepath.Join(s.Dir, name))
	default:
		log.Printf("Unknown request %q from %s", request, conn.RemoteAddr())
	}
	if err != nil {
		// The client sees an empty response
		log.Printf("%s: %v", request, err)
		return
	}
	if _, err := conn.Write(response); err != nil {
		log.Printf("Reply to %s: %v", conn.RemoteAddr(), err)
	}
}

func (s *Server) list() ([]byte, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, errors.New("no configurations")
	}
	return []byte(strings.Join(names, "\n") + "\n"), nil
}

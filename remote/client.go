// Package remote fetches run configurations from a configuration server.
//
// A request is bare text ("list" or "get <name>") with no terminator; the client
// half-closes its side of the connection to end it. The response is every byte the
// server writes until it closes the connection.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultAddr = "comp280.sandiego.edu:9181"
	MaxPayload  = 1 << 20
)

var ErrFetchFailed = errors.New("remote fetch failed")

// Client talks to one configuration server. The zero value uses DefaultAddr and no timeout.
type Client struct {
	Addr    string
	Timeout time.Duration // bound on a whole exchange, 0 for none
}

func (c *Client) addr() string {
	if c.Addr == "" {
		return DefaultAddr
	}
	return c.Addr
}

// Send one request and read the whole response
func (c *Client) exchange(ctx context.Context, request string) ([]byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", c.addr())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, request, err)
		}
	}

	// No terminator, the half-close ends the request
	if _, err := io.WriteString(conn, request); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, request, err)
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		if err := tcp.CloseWrite(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, request, err)
		}
	}

	data, err := io.ReadAll(io.LimitReader(conn, MaxPayload+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, request, err)
	}
	if len(data) > MaxPayload {
		return nil, fmt.Errorf("%w: %s: response exceeds %d bytes", ErrFetchFailed, request, MaxPayload)
	}
	return data, nil
}

// List returns the names of the configurations the server offers.
func (c *Client) List(ctx context.Context) ([]string, error) {
	data, err := c.exchange(ctx, "list")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Get returns the raw contents of the named configuration.
func (c *Client) Get(ctx context.Context, name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return nil, fmt.Errorf("%w: invalid name %q", ErrFetchFailed, name)
	}
	data, err := c.exchange(ctx, "get "+name)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s: empty response", ErrFetchFailed, name)
	}
	return data, nil
}

// Fetch gets the named configuration and saves it as dir/name, returning the path written.
// Nothing is written when the fetch fails.
func (c *Client) Fetch(ctx context.Context, name, dir string) (string, error) {
	data, err := c.Get(ctx, name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	log.Printf("Fetched %s from %s (%d bytes)", name, c.addr(), len(data))
	return path, nil
}

package utils

import (
	"fmt"
	"net"
	"sync"
)

// RemoteLogger streams log lines to any TCP client connected to its port.
// The TUI owns the terminal, so diagnostics go out-of-band; attach with
// e.g. `nc localhost <port>`.
type RemoteLogger struct {
	Port     int
	Listener net.Listener

	mu      sync.Mutex
	clients []net.Conn
}

// NewRemoteLogger starts a TCP listener on the given port. A zero port
// disables the logger; Logf becomes a no-op.
func NewRemoteLogger(port int) (*RemoteLogger, error) {
	if port == 0 {
		return &RemoteLogger{}, nil
	}
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return &RemoteLogger{}, err
	}
	rl := &RemoteLogger{
		Port:     port,
		Listener: ln,
	}
	go rl.acceptClients()
	return rl, nil
}

func (rl *RemoteLogger) acceptClients() {
	for {
		conn, err := rl.Listener.Accept()
		if err != nil {
			return
		}
		rl.mu.Lock()
		rl.clients = append(rl.clients, conn)
		rl.mu.Unlock()
	}
}

// Logf sends a formatted log line to all connected clients.
func (rl *RemoteLogger) Logf(format string, args ...any) {
	if rl == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	alive := rl.clients[:0]
	for _, conn := range rl.clients {
		if _, err := fmt.Fprintln(conn, msg); err == nil {
			alive = append(alive, conn)
		}
	}
	rl.clients = alive
}

func (rl *RemoteLogger) Close() error {
	if rl == nil || rl.Listener == nil {
		return nil
	}
	rl.mu.Lock()
	for _, conn := range rl.clients {
		_ = conn.Close()
	}
	rl.clients = nil
	rl.mu.Unlock()
	return rl.Listener.Close()
}

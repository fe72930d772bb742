// Package jobstest provides a minimal NATS server for tests of job publishing.
package jobstest

import (
	"bufio"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
)

const info = `INFO {"server_id":"jobstest","version":"2.10.0","proto":1,"headers":true,"max_payload":1048576}` + "\r\n"

// Message is a message received by the server.
type Message struct {
	Subject string
	Header  string
	Data    []byte
}

// Server answers the NATS handshake, PINGs and header publishes. It keeps every
// published message; it does not deliver them to subscribers.
type Server struct {
	listener net.Listener
	messages chan Message

	mu    sync.Mutex
	conns []net.Conn
}

// NewServer starts a server on a loopback port. It is closed when the test ends.
func NewServer(t *testing.T) *Server {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("jobstest: listen: %v", err)
	}

	server := &Server{
		listener: listener,
		messages: make(chan Message, 16),
	}

	go server.accept()

	t.Cleanup(server.Close)

	return server
}

// URL returns the nats:// URL of the server.
func (s *Server) URL() string {
	return "nats://" + s.listener.Addr().String()
}

// Messages returns the channel published messages arrive on.
func (s *Server) Messages() <-chan Message {
	return s.messages
}

// Close stops accepting and drops open connections.
func (s *Server) Close() {
	_ = s.listener.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, conn := range s.conns {
		_ = conn.Close()
	}
}

func (s *Server) accept() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()

		go s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	_, err := io.WriteString(conn, info)
	if err != nil {
		return
	}

	reader := bufio.NewReader(conn)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToUpper(fields[0]) {
		case "PING":
			_, err = io.WriteString(conn, "PONG\r\n")
		case "HPUB":
			err = s.readPublish(reader, fields)
		}

		if err != nil {
			return
		}
	}
}

// readPublish reads the body of "HPUB <subject> [reply] <header size> <total size>".
func (s *Server) readPublish(reader *bufio.Reader, fields []string) error {
	if len(fields) < 4 {
		return io.ErrUnexpectedEOF
	}

	headerSize, err := strconv.Atoi(fields[len(fields)-2])
	if err != nil {
		return err
	}

	totalSize, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return err
	}

	body := make([]byte, totalSize+2)

	_, err = io.ReadFull(reader, body)
	if err != nil {
		return err
	}

	s.messages <- Message{
		Subject: fields[1],
		Header:  string(body[:headerSize]),
		Data:    body[headerSize:totalSize],
	}

	return nil
}

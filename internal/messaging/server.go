package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// NatsServer embeds a NATS server in-process and holds an internal
// client connection for the relay. Out-of-process consumers (the UI
// shell, the audio mixer) connect to the same listener.
type NatsServer struct {
	ns   *server.Server
	conn *nats.Conn

	startupTimeout time.Duration
	host           string
	port           int
}

type NatsServerOpt func(*NatsServer)

// WithStartTimeout sets how long Start waits for the server to accept
// connections.
func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.startupTimeout = d
	}
}

// WithHost sets the listen host.
func WithHost(host string) NatsServerOpt {
	return func(n *NatsServer) {
		n.host = host
	}
}

// WithPort sets the listen port.
func WithPort(port int) NatsServerOpt {
	return func(n *NatsServer) {
		n.port = port
	}
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	s := &NatsServer{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
	}

	for _, opt := range opts {
		opt(s)
	}

	ns, err := server.NewServer(&server.Options{
		Host:   s.host,
		Port:   s.port,
		NoSigs: true, // Let the application handle signals
	})
	if err != nil {
		return nil, err
	}
	s.ns = ns

	return s, nil
}

func (n *NatsServer) Start(ctx context.Context) error {
	n.ns.Start()

	if !n.ns.ReadyForConnections(n.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}

	conn, err := nats.Connect(n.clientURL())
	if err != nil {
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	n.conn = conn

	slog.InfoContext(ctx, "nats server listening", "addr", n.ns.Addr())

	<-ctx.Done()
	n.conn.Close()
	n.ns.Shutdown()
	n.ns.WaitForShutdown()

	return nil
}

// Publish sends a message to the given subject.
func (n *NatsServer) Publish(subject string, data []byte) error {
	if n.conn == nil {
		return fmt.Errorf("nats server not started")
	}
	return n.conn.Publish(subject, data)
}

// Subscribe creates a subscription on the given subject and returns an
// unsubscribe function.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	if n.conn == nil {
		return nil, fmt.Errorf("nats server not started")
	}
	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return func() { sub.Unsubscribe() }, nil
}

func (n *NatsServer) clientURL() string {
	return fmt.Sprintf("nats://%s:%d", n.host, n.port)
}

package testing

import (
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// JetStreamServer is an in-process NATS server with a connected client.
type JetStreamServer struct {
	Server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
}

// StartJetStream starts an embedded NATS server with JetStream enabled.
//
// The server listens on a random local port and keeps its data in a test
// temp dir. Server and connection are shut down by t.Cleanup.
//
// Parameters:
//   - t: Test or benchmark owning the server
//
// Returns:
//   - *JetStreamServer: Running server, client connection and JetStream handle
//
// Example:
//
//	srv := jatest.StartJetStream(t)
//	kv := srv.KeyValue(t, "rounds")
func StartJetStream(t testing.TB) *JetStreamServer {
	t.Helper()

	opts := &server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
		NoLog:     true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		t.Fatalf("create embedded NATS server: %v", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		t.Fatal("embedded NATS server not ready within 5s")
	}

	nc, err := nats.Connect(ns.ClientURL(), nats.Timeout(2*time.Second))
	if err != nil {
		ns.Shutdown()
		t.Fatalf("connect to embedded NATS server: %v", err)
	}

	t.Cleanup(func() {
		nc.Close()
		ns.Shutdown()
		ns.WaitForShutdown()
	})

	js, err := jetstream.New(nc)
	if err != nil {
		t.Fatalf("create JetStream handle: %v", err)
	}

	return &JetStreamServer{Server: ns, Conn: nc, JS: js}
}

// KeyValue creates an in-memory KV bucket on the server.
func (s *JetStreamServer) KeyValue(t testing.TB, bucket string) jetstream.KeyValue {
	t.Helper()

	kv, err := s.JS.CreateKeyValue(t.Context(), jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: fmt.Sprintf("test bucket %s", bucket),
		Storage:     jetstream.MemoryStorage,
		History:     4,
	})
	if err != nil {
		t.Fatalf("create KV bucket %s: %v", bucket, err)
	}

	return kv
}

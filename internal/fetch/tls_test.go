package fetch

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestPeerCertificate(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(srv.Close)

	host, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	port, _ := strconv.Atoi(portStr)

	der, err := PeerCertificate(context.Background(), host, port, Options{ServerName: "example.com", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("PeerCertificate() error = %v", err)
	}
	if !bytes.Equal(der, srv.Certificate().Raw) {
		t.Fatalf("returned certificate does not match server certificate")
	}
}

func TestPeerCertificate_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	_, err = PeerCertificate(context.Background(), "127.0.0.1", port, Options{Timeout: time.Second})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestPeerCertificate_NotTLS(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		conn.Write([]byte("HTTP/1.0 400 Bad Request\r\n\r\n"))
		conn.Close()
	}()

	_, err = PeerCertificate(context.Background(), "127.0.0.1", ln.Addr().(*net.TCPAddr).Port, Options{Timeout: 2 * time.Second})
	if err == nil {
		t.Fatalf("expected handshake error")
	}
}

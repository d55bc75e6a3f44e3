// Package fetch retrieves certificates from remote TLS endpoints.
package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"k8s.io/klog/v2"
)

// DefaultTimeout bounds dial plus handshake when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Options for PeerCertificate.
type Options struct {
	// ServerName overrides SNI; defaults to the host.
	ServerName string
	Timeout    time.Duration
}

// ErrNoPeerCertificate is returned when the server completed the handshake
// without presenting a certificate.
var ErrNoPeerCertificate = errors.New("server presented no certificate")

// PeerCertificate connects to host:port and returns the DER of the leaf
// certificate the server presents. The chain is not verified;
// the result is only compared against expectations.
func PeerCertificate(ctx context.Context, host string, port int, opts Options) ([]byte, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	serverName := opts.ServerName
	if serverName == "" {
		serverName = host
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	d := &tls.Dialer{
		Config: &tls.Config{
			ServerName:         serverName,
			InsecureSkipVerify: true, //nolint:gosec // trust is not evaluated here
		},
	}

	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	defer conn.Close()
	klog.V(2).Infof("TLS handshake with %s took %s", addr, time.Since(start).Round(time.Millisecond))

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, fmt.Errorf("connect %s: %w", addr, ErrNoPeerCertificate)
	}
	return state.PeerCertificates[0].Raw, nil
}

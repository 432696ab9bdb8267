package server

import (
	"crypto/tls"
	"fmt"
	"net"
)

// Application protocols advertised over ALPN.
var (
	ProtocolsHTTP = []string{"h2", "http/1.1"}
	ProtocolsGRPC = []string{"h2"}
)

// NewSecurityLayer picks the listener for a server: TLS when enabled, plain otherwise.
func NewSecurityLayer(enableTLS bool, certFileName, privateKeyFileName string, protocols []string) SecurityLayer {
	if enableTLS {
		return NewTLSListener(certFileName, privateKeyFileName, protocols...)
	}
	return NewPlainListener()
}

// TLSListener accepts TLS 1.2+ connections with a certificate loaded from disk.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string
	nextProtos         []string
}

func NewTLSListener(certFileName, privateKeyFileName string, nextProtos ...string) *TLSListener {
	return &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
		nextProtos:         nextProtos,
	}
}

// Listen loads the key pair on every call so a restarted server picks up a
// renewed certificate.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	ln, err := net.Listen(protocol, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return tls.NewListener(ln, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   l.nextProtos,
	}), nil
}

// PlainListener accepts unencrypted connections. Meant for local development
// or deployments behind a TLS-terminating proxy.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := net.Listen(protocol, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

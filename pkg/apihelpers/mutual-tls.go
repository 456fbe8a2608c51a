package apihelpers

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// CertificatePaths points to the PEM files for one mTLS identity. The CA cert
// is used to verify the peer on both the serving and the calling side.
type CertificatePaths struct {
	ServerCertPath string
	ServerKeyPath  string
	CACertPath     string
}

func LoadTLSConfig(paths CertificatePaths) (*tls.Config, error) {
	serverCert, err := tls.LoadX509KeyPair(paths.ServerCertPath, paths.ServerKeyPath)
	if err != nil {
		return nil, err
	}

	caCert, err := os.ReadFile(paths.CACertPath)
	if err != nil {
		return nil, err
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("no CA certificate could be parsed from %s", paths.CACertPath)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{serverCert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    caCertPool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

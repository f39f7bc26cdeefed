package clickhouse

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pkg/errors"
)

// TLSSettings configure an encrypted connection. CertFile and KeyFile present a
// client certificate and must be set together. CAFile replaces the system
// roots used to verify the server.
type TLSSettings struct {
	Enabled  bool
	CertFile string
	KeyFile  string
	CAFile   string
}

// IsEnabled reports whether the connection should use TLS. Setting any of the
// files implies it.
func (s TLSSettings) IsEnabled() bool {
	return s.Enabled || s.CertFile != "" || s.KeyFile != "" || s.CAFile != ""
}

// TLSConfig builds the client TLS configuration described by s.
func TLSConfig(s TLSSettings) (*tls.Config, error) {
	if (s.CertFile == "") != (s.KeyFile == "") {
		return nil, errors.New("TLS cert file and key file must be set together")
	}

	cfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if s.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(s.CertFile, s.KeyFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load TLS key pair")
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if s.CAFile != "" {
		pem, err := os.ReadFile(s.CAFile)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read CA file %s", s.CAFile)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, errors.Errorf("no certificates found in %s", s.CAFile)
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}

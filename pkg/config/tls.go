package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
)

type ServerTLSConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	CertFile   string `mapstructure:"cert_file"`
	KeyFile    string `mapstructure:"key_file"`
	CACert     string `mapstructure:"ca_cert"`
	EnableMTLS bool   `mapstructure:"enable_mtls"`
	MaxVersion string `mapstructure:"max_version"`
}

// BuildTLSConfig returns nil when TLS is off.
func BuildTLSConfig(cfg *ServerTLSConfig) (*tls.Config, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	pub, err := resolvePath(cfg.CertFile)
	if err != nil {
		return nil, fmt.Errorf("resolve certificate path: %w", err)
	}
	private, err := resolvePath(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("resolve private key path: %w", err)
	}
	cert, err := tls.LoadX509KeyPair(pub, private)
	if err != nil {
		return nil, fmt.Errorf("load X509 key pair: %w", err)
	}

	config := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		MaxVersion:   tlsVersion(cfg.MaxVersion),
	}

	if cfg.EnableMTLS {
		clientCAs := x509.NewCertPool()
		if cfg.CACert == "" {
			return nil, fmt.Errorf("mtls requires a CA certificate")
		}
		caPath, err := resolvePath(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("resolve CA cert path: %w", err)
		}
		caBytes, err := os.ReadFile(caPath) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("read CA cert: %w", err)
		}
		if ok := clientCAs.AppendCertsFromPEM(caBytes); !ok {
			return nil, fmt.Errorf("failed to append CA certificate from %s", cfg.CACert)
		}
		config.ClientCAs = clientCAs
		config.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return config, nil
}

func resolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, path), nil
}

func tlsVersion(version string) uint16 {
	switch version {
	case "TLS12":
		return tls.VersionTLS12
	default:
		return tls.VersionTLS13
	}
}

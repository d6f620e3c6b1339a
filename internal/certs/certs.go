// Package certs generates the self-signed TLS certificate served by the
// generated project's nginx. Certificates are produced natively with
// crypto/x509, so no openssl binary is required on the host.
package certs

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultKeySize is the RSA key size in bits.
	DefaultKeySize = 4096

	// DefaultValidity is how long a generated certificate stays valid.
	DefaultValidity = 365 * 24 * time.Hour
)

// Generator produces a self-signed certificate for a single hostname.
type Generator struct {
	Hostname string
	KeySize  int
	Validity time.Duration

	keyPEM  []byte
	certPEM []byte
}

// NewGenerator returns a Generator with the default key size and validity.
func NewGenerator(hostname string) *Generator {
	return &Generator{
		Hostname: hostname,
		KeySize:  DefaultKeySize,
		Validity: DefaultValidity,
	}
}

// Generate creates the private key and the self-signed certificate. The
// certificate carries the hostname as common name and SAN, and CA basic
// constraints with path length zero so browsers accept it as a local root.
func (g *Generator) Generate() error {
	key, err := rsa.GenerateKey(rand.Reader, g.KeySize)
	if err != nil {
		return fmt.Errorf("failed to generate RSA key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return fmt.Errorf("failed to generate serial number: %w", err)
	}

	now := time.Now()
	template := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName: g.Hostname,
		},
		NotBefore:             now,
		NotAfter:              now.Add(g.Validity),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLen:            0,
		MaxPathLenZero:        true,
		DNSNames:              []string{g.Hostname},
		SignatureAlgorithm:    x509.SHA256WithRSA,
	}

	derBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return fmt.Errorf("failed to create certificate: %w", err)
	}

	g.certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: derBytes})
	g.keyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})

	return nil
}

// Write stores the generated pair under dir using the given filenames. The
// key file is written with owner-only permissions.
func (g *Generator) Write(dir, keyName, certificateName string) error {
	if g.keyPEM == nil || g.certPEM == nil {
		return fmt.Errorf("certificate has not been generated")
	}

	keyPath := filepath.Join(dir, keyName)
	if err := os.WriteFile(keyPath, g.keyPEM, 0600); err != nil {
		return fmt.Errorf("failed to write key %s: %w", keyPath, err)
	}

	certPath := filepath.Join(dir, certificateName)
	if err := os.WriteFile(certPath, g.certPEM, 0644); err != nil {
		return fmt.Errorf("failed to write certificate %s: %w", certPath, err)
	}

	return nil
}

// Package broker holds MQTT connection parameters and turns them into
// paho client options, including mutual TLS.
package broker

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/eclipse/paho.mqtt.golang/packets"
)

var (
	ErrReadCA  = errors.New("unable to read CA file")
	ErrBadCA   = errors.New("no certificates found in CA file")
	ErrKeyPair = errors.New("unable to load client key pair")
	// ErrIncompleteTLS means some but not all of the TLS files are set.
	ErrIncompleteTLS = errors.New("CA, certificate and key files must be set together")
)

type Config struct {
	Host     string
	Port     int
	ClientID string
	Username string
	Password string

	// Mutual TLS is used when all three files are set.
	CACertFile string
	CertFile   string
	KeyFile    string

	KeepAlive time.Duration
}

func (c Config) UseTLS() bool {
	return c.CACertFile != "" && c.CertFile != "" && c.KeyFile != ""
}

func (c Config) ValidateTLS() error {
	set := 0
	for _, f := range []string{c.CACertFile, c.CertFile, c.KeyFile} {
		if f != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return ErrIncompleteTLS
	}
	return nil
}

func (c Config) URL() string {
	scheme := "tcp"
	if c.UseTLS() {
		scheme = "ssl"
	}
	return scheme + "://" + c.Host + ":" + strconv.Itoa(c.Port)
}

// ClientOptions builds paho options. Reconnection is left to the caller.
func (c Config) ClientOptions() (*mqtt.ClientOptions, error) {
	if err := c.ValidateTLS(); err != nil {
		return nil, err
	}
	opts := mqtt.NewClientOptions().
		AddBroker(c.URL()).
		SetClientID(c.ClientID).
		SetAutoReconnect(false).
		SetConnectRetry(false).
		SetOrderMatters(true)

	if c.KeepAlive > 0 {
		opts.SetKeepAlive(c.KeepAlive)
	}
	if c.Username != "" {
		opts.SetUsername(c.Username)
		opts.SetPassword(c.Password)
	}
	if c.UseTLS() {
		tlsCfg, err := TLSConfig(c.CACertFile, c.CertFile, c.KeyFile)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

func TLSConfig(caFile, certFile, keyFile string) (*tls.Config, error) {
	const fn = "Broker:TLSConfig"
	ca, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrReadCA, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(ca) {
		return nil, fmt.Errorf("%s:%w: %s", fn, ErrBadCA, caFile)
	}
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrKeyPair, err)
	}
	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		RootCAs:      pool,
		Certificates: []tls.Certificate{cert},
	}, nil
}

// Describe explains a CONNACK refusal in operator terms. Unknown errors
// yield an empty string.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, packets.ErrorRefusedBadProtocolVersion):
		return "broker rejected the protocol version"
	case errors.Is(err, packets.ErrorRefusedIDRejected):
		return "client identifier rejected: another client may be using the same ID, or the policy does not allow it"
	case errors.Is(err, packets.ErrorRefusedServerUnavailable):
		return "broker is unavailable"
	case errors.Is(err, packets.ErrorRefusedBadUsernameOrPassword):
		return "invalid username or password"
	case errors.Is(err, packets.ErrorRefusedNotAuthorised):
		return "not authorised: check that the certificate is active and has a policy attached"
	}
	return ""
}

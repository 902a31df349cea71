// Package httpclient arma los *http.Client de los adapters salientes (S3).
package httpclient

import (
	"net/http"
	"time"
)

const (
	DefaultTimeout = 30 * time.Second

	// Las subidas van todas al mismo host del bucket.
	DefaultMaxIdleConnsPerHost = 32
)

// New crea un client con transport propio (no comparte pool con
// http.DefaultTransport).
func New(timeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	tr.IdleConnTimeout = 90 * time.Second
	tr.ResponseHeaderTimeout = timeout
	return NewWithTransport(timeout, tr)
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
	}
}

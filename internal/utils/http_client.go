package utils

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewHTTPClient builds an outbound client with the given overall timeout.
// The gemini client keeps one per timeout class (catalog vs generation).
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: false,
			},
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

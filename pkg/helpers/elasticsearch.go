package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// NewESClient builds the Elasticsearch client used for resource and
// discussion search. Timeouts are short on purpose: search is best-effort
// and callers fall back to the SQL scan when the cluster is slow or down.
// Basic auth is applied only when a username is set.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses:     addrs,
		MaxRetries:    2,
		RetryOnStatus: []int{502, 503, 504},
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   8,
			ResponseHeaderTimeout: 3 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
		},
	}
	if username != "" {
		cfg.Username = username
		cfg.Password = password
	}
	return elasticsearch.NewClient(cfg)
}

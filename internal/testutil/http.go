// Package testutil holds helpers shared by package tests.
package testutil

import (
	"net"
	"net/http"
	"time"
)

// NoProxyClient returns an HTTP client that doesn't use any proxy.
// Test servers listen on loopback and must not be reached through an
// HTTP_PROXY inherited from the developer's environment.
func NoProxyClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: nil,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}
}

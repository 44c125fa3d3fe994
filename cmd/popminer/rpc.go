package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/btcsuite/btcd/rpcclient"
)

type altChainConfig struct {
	ID       string
	URL      string
	User     string
	Password string
}

// parseAltChains reads id=url entries. Credentials may be given as URL user info.
func parseAltChains(entries []string) ([]altChainConfig, error) {
	out := make([]altChainConfig, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		id, rawURL, ok := strings.Cut(entry, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" || rawURL == "" {
			return nil, fmt.Errorf("alt chain %q: expected id=url", entry)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("alt chain %s configured twice", id)
		}
		seen[id] = struct{}{}

		parsed, err := url.Parse(strings.TrimSpace(rawURL))
		if err != nil {
			return nil, fmt.Errorf("alt chain %s: parse url: %w", id, err)
		}
		c := altChainConfig{ID: id}
		if parsed.User != nil {
			c.User = parsed.User.Username()
			c.Password, _ = parsed.User.Password()
			parsed.User = nil
		}
		c.URL = parsed.String()
		out = append(out, c)
	}
	return out, nil
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	return rpcclient.New(cfg, nil)
}

func shutdownRPCClient(c *rpcclient.Client) {
	c.Shutdown()
	c.WaitForShutdown()
}

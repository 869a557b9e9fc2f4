package sftpgoclient

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
)

// DefaultRequestTimeout bounds every call made against SFTPGo, token issuance included.
const DefaultRequestTimeout = 15 * time.Second

// ServerConfig holds the endpoint and admin credentials of one SFTPGo instance.
type ServerConfig struct {
	Endpoint      string
	AdminUsername string
	AdminPassword string
}

// Options tune the clients built by a MultiClient.
type Options struct {
	RequestTimeout    time.Duration
	TokenSafetyMargin time.Duration
}

// Factory builds the client of a named server.
type Factory func(server string) (Client, error)

// MultiClient lazily builds and caches one Client, and therefore one credential cache,
// per configured SFTPGo server.
type MultiClient struct {
	servers map[string]struct{}
	factory Factory

	mu      sync.RWMutex
	clients map[string]Client
}

// NewMultiClient builds clients talking HTTP to the configured servers.
func NewMultiClient(servers map[string]ServerConfig, opts Options) *MultiClient {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}

	return NewMultiClientWithFactory(names, func(server string) (Client, error) {
		return newHTTPClient(server, servers[server], opts)
	})
}

// NewMultiClientWithFactory is mostly useful for tests that want to plug fake clients.
func NewMultiClientWithFactory(servers []string, factory Factory) *MultiClient {
	known := make(map[string]struct{}, len(servers))
	for _, name := range servers {
		known[name] = struct{}{}
	}
	return &MultiClient{
		servers: known,
		factory: factory,
		clients: make(map[string]Client),
	}
}

// Has reports whether server is configured.
func (m *MultiClient) Has(server string) bool {
	_, ok := m.servers[server]
	return ok
}

// Servers returns the configured server names in lexical order.
func (m *MultiClient) Servers() []string {
	names := make([]string, 0, len(m.servers))
	for name := range m.servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// For returns the client of server, building it on first use.
func (m *MultiClient) For(server string) (Client, error) {
	if !m.Has(server) {
		return nil, operrors.NewUserInputError("spec.server", fmt.Sprintf("unknown SFTPGo server %q", server))
	}

	m.mu.RLock()
	if c, ok := m.clients[server]; ok {
		m.mu.RUnlock()
		return c, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if c, ok := m.clients[server]; ok {
		return c, nil
	}

	c, err := m.factory(server)
	if err != nil {
		return nil, err
	}
	m.clients[server] = c
	return c, nil
}

func newHTTPClient(server string, cfg ServerConfig, opts Options) (Client, error) {
	if _, err := joinURL(cfg.Endpoint, ""); err != nil {
		return nil, operrors.NewUserInputError("servers."+server+".endpoint", err.Error())
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	httpClient := &http.Client{Timeout: timeout}

	margin := opts.TokenSafetyMargin
	if margin <= 0 {
		margin = DefaultTokenSafetyMargin
	}

	auth := NewRefreshableAuthContext(
		cfg.AdminUsername,
		cfg.AdminPassword,
		NewAdminTokenIssuer(cfg.Endpoint, httpClient),
		WithSafetyMargin(margin),
		WithServerName(server),
	)

	return NewClient(server, cfg.Endpoint, httpClient, auth), nil
}

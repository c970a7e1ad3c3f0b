package gateway

import (
	"encoding/base64"
	"sync"
)

// Credentials are the operator's identity and secret for the session.
// They leave the process only as a derived basic-auth header.
type Credentials struct {
	Identity string
	Secret   string
}

// Header derives the basic-auth Authorization header value.
func (c Credentials) Header() string {
	raw := c.Identity + ":" + c.Secret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// CredentialStore holds the session credentials. Replaced wholesale by the
// reauth flow; never partially updated.
type CredentialStore struct {
	mu    sync.Mutex
	creds Credentials
}

// NewCredentialStore seeds the store, typically with the configured
// identity and an empty secret.
func NewCredentialStore(identity, secret string) *CredentialStore {
	return &CredentialStore{creds: Credentials{Identity: identity, Secret: secret}}
}

// Header derives the Authorization header value from the stored
// credentials.
func (s *CredentialStore) Header() string {
	return s.Current().Header()
}

// Replace swaps in new credentials.
func (s *CredentialStore) Replace(creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
}

// Current returns a copy of the stored credentials.
func (s *CredentialStore) Current() Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}

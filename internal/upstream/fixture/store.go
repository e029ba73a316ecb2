// Package fixture serves records from JSON files on disk, using the same
// {"data": [...]} envelope the live webhooks return. It backs local
// development and tests where no upstream is reachable.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"propdash/internal/core"
	"propdash/internal/upstream"
)

const (
	tenantsFile = "tenants.json"
	issuesFile  = "issues.json"
)

type Store struct {
	mu      sync.Mutex
	tenants []core.Tenant
	issues  []core.Issue
}

// Ensure interface conformance
var (
	_ upstream.TenantSource = (*Store)(nil)
	_ upstream.IssueSource  = (*Store)(nil)
)

func New(tenants []core.Tenant, issues []core.Issue) *Store {
	return &Store{tenants: tenants, issues: issues}
}

// NewFromFiles loads tenants.json and issues.json from base. A missing file
// yields an empty list; a file that exists but cannot be parsed is an error,
// since a broken fixture is a setup mistake worth surfacing.
func NewFromFiles(base string) (*Store, error) {
	tenants, err := readEnvelope[core.Tenant](filepath.Join(base, tenantsFile))
	if err != nil {
		return nil, err
	}
	issues, err := readEnvelope[core.Issue](filepath.Join(base, issuesFile))
	if err != nil {
		return nil, err
	}
	return New(tenants, issues), nil
}

func (s *Store) Tenants(_ context.Context) ([]core.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Tenant, len(s.tenants))
	copy(out, s.tenants)
	return out, nil
}

func (s *Store) Issues(_ context.Context) ([]core.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Issue, len(s.issues))
	copy(out, s.issues)
	return out, nil
}

func readEnvelope[R any](path string) ([]R, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var env struct {
		Data []R `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return env.Data, nil
}

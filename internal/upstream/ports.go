package upstream

import (
	"context"

	"propdash/internal/core"
)

// Ports for inbound record sources. The dashboard never writes back, so
// both ports are read-only.
type (
	TenantSource interface {
		// Tenants fetches the full tenant list. One call, no retry.
		Tenants(ctx context.Context) ([]core.Tenant, error)
	}

	IssueSource interface {
		// Issues fetches the full maintenance issue list.
		Issues(ctx context.Context) ([]core.Issue, error)
	}
)

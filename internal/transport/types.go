package transport

import (
	"context"
	"encoding/json"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/model"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/session"
)

type (
	// SessionStore is the session registry surface the API serves.
	SessionStore interface {
		Create(ctx context.Context, projectID string) (*session.Session, error)
		Get(projectID string) (*session.Session, error)
		End(projectID string) (model.SessionState, error)
	}

	// PerformanceReader proxies model performance history from the
	// compute service.
	PerformanceReader interface {
		PerformanceHistory(ctx context.Context, projectID string) (json.RawMessage, error)
	}

	// Capability reports whether contract event subscriptions are live.
	Capability interface {
		Live() bool
	}
)

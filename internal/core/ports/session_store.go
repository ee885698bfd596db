package ports

import (
	"context"

	"github.com/campusconnect/portal/internal/core/domain"
)

// SessionStore is the persistence adapter for client sessions, the explicit
// {read, write, clear} boundary over whatever storage backs it. Read must
// fail closed: corrupt or missing data yields (nil, nil), never an error the
// caller has to recover from.
type SessionStore interface {
	Read(ctx context.Context, key string) (*domain.Session, error)
	Write(ctx context.Context, key string, session *domain.Session) error
	Clear(ctx context.Context, key string) error
}

// PreferenceStore persists small per-client preferences that live
// independently of the session token, such as the remembered login
// identifier.
type PreferenceStore interface {
	ReadPreference(ctx context.Context, key string) (string, error)
	WritePreference(ctx context.Context, key, value string) error
	ClearPreference(ctx context.Context, key string) error
}

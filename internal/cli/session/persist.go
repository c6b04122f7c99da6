package session

import (
	"context"

	"github.com/yndnr/spot-go/internal/cli/credential"
)

// PersistHook keeps store in step with the session: a login saves the new
// token; a logout, failed restore or expired token deletes it. Other
// transitions leave the store alone.
func PersistHook(store credential.Store) Hook {
	return func(ctx context.Context, t Transition) error {
		switch t.Reason {
		case ReasonLogin:
			return store.Save(ctx, t.To.Token)
		case ReasonLogout, ReasonRestoreFailed, ReasonExpired:
			return store.Delete(ctx)
		default:
			return nil
		}
	}
}

package session

import "github.com/yndnr/spot-go/internal/core/domain"

// State is the position of a session in its lifecycle.
type State int

const (
	StateUnauthenticated State = iota
	StateRestoring
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session.
type Snapshot struct {
	State   State
	Token   string
	User    *domain.User
	Loading bool
}

// IsAuthenticated reports whether both a token and a user are held.
// A token still being restored does not count.
func (s Snapshot) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// Reason names why a transition happened.
type Reason string

const (
	// ReasonNoCredential: bootstrap found nothing saved.
	ReasonNoCredential Reason = "no_credential"
	// ReasonRestoring: a saved token was loaded and is being checked.
	ReasonRestoring Reason = "restoring"
	// ReasonRestored: the profile fetch for a saved token succeeded.
	ReasonRestored Reason = "restored"
	// ReasonRestoreFailed: the profile fetch for a saved token failed.
	ReasonRestoreFailed Reason = "restore_failed"
	// ReasonRestoreAborted: the caller cancelled the profile fetch.
	ReasonRestoreAborted Reason = "restore_aborted"
	// ReasonExpired: the saved token is a JWT past its exp claim.
	ReasonExpired Reason = "expired"
	ReasonLogin   Reason = "login"
	ReasonLogout  Reason = "logout"
	// ReasonExternal: the saved credential was removed by another process.
	ReasonExternal Reason = "external"
)

// Transition describes one state change.
type Transition struct {
	From   Snapshot
	To     Snapshot
	Reason Reason
}

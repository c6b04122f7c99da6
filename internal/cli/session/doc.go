// Package session owns the signed-in state of spot-cli.
//
// A Manager moves between three states:
//
//	Unauthenticated ──login──────────────▶ Authenticated
//	       │                                     │
//	   bootstrap (token saved)                 logout
//	       ▼                                     │
//	   Restoring ──profile ok──▶ Authenticated   ▼
//	       └──profile failed──▶ Unauthenticated ◀┘
//
// The Manager is the only writer of the connection.TokenStore that the
// HTTP client reads on every request. After each transition it runs its
// hooks in registration order; the first hook persists or removes the
// saved credential.
package session

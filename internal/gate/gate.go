// Package gate implements the admin access gate: a two-state machine that
// unlocks the dashboard when the stored or entered key matches the
// configured passkey.
package gate

import (
	"crypto/subtle"
	"errors"

	"github.com/carepulse/carepulse-api/pkg/passkey"
)

// ErrInvalidPasskey is returned when the entered key does not match.
var ErrInvalidPasskey = errors.New("gate: invalid passkey")

// State is the gate's position.
type State string

const (
	StateLocked   State = "locked"
	StateUnlocked State = "unlocked"
)

// EntryRoute is where a closed gate sends the visitor.
const EntryRoute = "/"

// DashboardRoute is where an unlocked gate navigates, at most once.
const DashboardRoute = "/admin"

// Gate checks stored and entered keys against the configured passkey.
// A Gate is immutable and safe for concurrent use; navigation bookkeeping
// lives in the Mount result, not the Gate.
type Gate struct {
	secret string
}

func New(secret string) *Gate {
	return &Gate{secret: secret}
}

// MountResult is the outcome of evaluating a stored key on mount.
type MountResult struct {
	State State
	// Navigate is true exactly when this mount flipped the gate open and
	// the caller should move to the dashboard. Re-mounting an already
	// unlocked gate must not navigate again.
	Navigate bool
	Route    string
}

// Mount evaluates the key the client has stored, if any. An absent or
// undecodable key leaves the gate locked without error; only Submit
// reports a mismatch.
func (g *Gate) Mount(storedEncoded string, alreadyUnlocked bool) MountResult {
	if storedEncoded == "" {
		return MountResult{State: StateLocked}
	}
	decoded, err := passkey.Decode(storedEncoded)
	if err != nil || !g.matches(decoded) {
		return MountResult{State: StateLocked}
	}
	if alreadyUnlocked {
		return MountResult{State: StateUnlocked}
	}
	return MountResult{State: StateUnlocked, Navigate: true, Route: DashboardRoute}
}

// Submit checks an entered key and returns its encoded form for the
// client to store. The encoding round-trips: Decode(Submit(k)) == k.
func (g *Gate) Submit(entered string) (string, error) {
	if !g.matches(entered) {
		return "", ErrInvalidPasskey
	}
	return passkey.Encode(entered), nil
}

// Close is the dismissal path: the gate locks and the visitor returns to
// the entry route.
func (g *Gate) Close() (State, string) {
	return StateLocked, EntryRoute
}

func (g *Gate) matches(key string) bool {
	return subtle.ConstantTimeCompare([]byte(key), []byte(g.secret)) == 1
}

package access

import "time"

// Policy is what the UI needs to know about the current session.
type Policy struct {
	State        State
	Capabilities []string
	ExpiresAt    *time.Time
}

// ComputePolicy derives the policy for a session expiring at expiresAt.
// A nil or past expiry is anonymous.
func ComputePolicy(now time.Time, expiresAt *time.Time) Policy {
	state := StateAnonymous
	if expiresAt != nil && now.Before(*expiresAt) {
		state = StateAdmin
	} else {
		expiresAt = nil
	}

	return Policy{
		State:        state,
		Capabilities: CapabilitiesFor(state),
		ExpiresAt:    expiresAt,
	}
}

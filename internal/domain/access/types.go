package access

// State is the caller's position in the admin gate: anonymous → admin → anonymous.
type State string

const (
	StateAnonymous State = "anonymous"
	StateAdmin     State = "admin"
)

// Authenticated reports whether the state may perform mutating operations.
func (s State) Authenticated() bool {
	return s == StateAdmin
}

const (
	CapEdit   = "edit"
	CapUpload = "upload"
	CapDelete = "delete"
)

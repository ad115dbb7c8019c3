package access

func CapabilitiesFor(state State) []string {
	if !state.Authenticated() {
		return []string{}
	}
	return []string{CapEdit, CapUpload, CapDelete}
}

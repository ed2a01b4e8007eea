package state

type Listeners map[string][]func()

const (
	LayoutOnUpdate = "update"
	LayoutOnReset  = "reset"
)

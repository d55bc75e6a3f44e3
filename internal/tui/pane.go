package tui

// PaneID identifies which pane is focused.
type PaneID int

const (
	PaneSources PaneID = iota
	PaneDetails
	paneCount // sentinel for wrapping
)

func (p PaneID) Next() PaneID {
	return (p + 1) % paneCount
}

func (p PaneID) Prev() PaneID {
	return (p - 1 + paneCount) % paneCount
}

func (p PaneID) String() string {
	switch p {
	case PaneSources:
		return "Sources"
	case PaneDetails:
		return "Details"
	default:
		return "?"
	}
}

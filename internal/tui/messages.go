package tui

// SourceFocusedMsg is sent when the cursor moves onto another source.
type SourceFocusedMsg struct {
	Index int
}

// StatusMsg sets the status bar text.
type StatusMsg struct {
	Text  string
	IsErr bool
}

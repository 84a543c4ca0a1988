package ui

// Settings holds the operator-visible console configuration. The system
// page edits a working copy; leaving the page with changes persists it
// through the engine (M500) and the optional host callback.
type Settings struct {
	Language Language
	Audio    bool
}

// settingsBackup tracks the persisted state so the system-page return key
// knows whether anything changed.
type settingsBackup struct {
	saved Settings
}

func (b *settingsBackup) dirty(cur Settings) bool {
	return b.saved != cur
}

func (b *settingsBackup) commit(cur Settings) {
	b.saved = cur
}

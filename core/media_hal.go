package core

// FileEntry is one printable file as the panel file list shows it.
type FileEntry struct {
	ShortName string // 8.3 path passed to the engine
	LongName  string // display name
}

// MediaDriver is the abstract print-media interface consumed by the file
// list page and the outage-resume prompt.
type MediaDriver interface {
	// Inserted reports whether media is present.
	Inserted() bool

	// FileCount returns the number of entries in the current directory.
	FileCount() int

	// File returns the entry at index i.
	File(i int) FileEntry

	// LongName resolves a short path to its display name; returns the
	// path unchanged when no long name is known.
	LongName(shortPath string) string

	// ChangeDir enters a subdirectory; UpDir leaves it. Refresh rescans.
	ChangeDir(name string)
	UpDir()
	Refresh()
}

var mediaDriver MediaDriver

// SetMediaDriver is called by target- or host-specific code.
func SetMediaDriver(d MediaDriver) {
	mediaDriver = d
}

// MustMedia returns the configured driver or panics if missing.
func MustMedia() MediaDriver {
	if mediaDriver == nil {
		panic("media driver not configured")
	}
	return mediaDriver
}

package core

// RecordMedium is the fixed non-volatile slot that holds the recovery
// record. The region has a fixed base address and size owned by the target;
// Write overwrites the whole region in one operation.
type RecordMedium interface {
	// Ready reports whether the medium can be read (mounted, initialized).
	Ready() bool

	// Read copies the fixed region into buf. len(buf) must not exceed the
	// region size.
	Read(buf []byte) error

	// Write overwrites the start of the fixed region with data.
	// Must be callable from the emergency path: single operation, no retry.
	Write(data []byte) error

	// Erase clears the fixed region.
	Erase() error
}

var recordMedium RecordMedium

// SetRecordMedium is called by target-specific code to register its medium.
func SetRecordMedium(m RecordMedium) {
	recordMedium = m
}

// MustRecordMedium returns the configured medium or panics if missing.
func MustRecordMedium() RecordMedium {
	if recordMedium == nil {
		panic("record medium not configured")
	}
	return recordMedium
}

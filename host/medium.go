package host

import "os"

// FileMedium backs the recovery record region with a small file, standing
// in for the firmware's flash sector on a host bench setup.
type FileMedium struct {
	path string
}

// NewFileMedium points the medium at its backing file. The file appears
// on the first write.
func NewFileMedium(path string) *FileMedium {
	return &FileMedium{path: path}
}

func (m *FileMedium) Ready() bool { return m.path != "" }

func (m *FileMedium) Read(buf []byte) error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			// A blank region reads as zeroes, like erased flash.
			for i := range buf {
				buf[i] = 0
			}
			return nil
		}
		return err
	}
	copy(buf, data)
	return nil
}

// Write is the emergency-path store: one plain write, no staging, so it
// completes inside the supply hold-up window.
func (m *FileMedium) Write(data []byte) error {
	return os.WriteFile(m.path, data, 0o644)
}

func (m *FileMedium) Erase() error {
	err := os.Remove(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

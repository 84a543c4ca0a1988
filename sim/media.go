package sim

import "rekindle/core"

// Media is an in-memory core.MediaDriver fed from the profile file list.
// The listing is flat; directory navigation is accepted and ignored.
type Media struct {
	entries  []core.FileEntry
	inserted bool
}

// NewMedia builds a media driver over the given display names.
func NewMedia(files []string) *Media {
	m := &Media{inserted: true}
	for _, f := range files {
		m.entries = append(m.entries, core.FileEntry{
			ShortName: f,
			LongName:  f,
		})
	}
	return m
}

// Insert simulates plugging the media in or out.
func (m *Media) Insert(in bool) { m.inserted = in }

func (m *Media) Inserted() bool { return m.inserted }

func (m *Media) FileCount() int {
	if !m.inserted {
		return 0
	}
	return len(m.entries)
}

func (m *Media) File(i int) core.FileEntry { return m.entries[i] }

// LongName resolves a short path, tolerating the leading slash the panel
// pick carries.
func (m *Media) LongName(shortPath string) string {
	name := shortPath
	if len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	for _, e := range m.entries {
		if e.ShortName == name {
			return e.LongName
		}
	}
	return name
}

func (m *Media) ChangeDir(name string) {}
func (m *Media) UpDir()                {}
func (m *Media) Refresh()              {}

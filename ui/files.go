package ui

import "rekindle/panel"

// fileRows is the number of list rows the file page shows at once.
const fileRows = 5

// printNameMax is the longest display name the status pages can show.
const printNameMax = 17

// fileWindow tracks the file page's paging and selection. index is
// 1-based (0 means no selection) to match the panel's row keys.
type fileWindow struct {
	page      int
	index     int
	indexLast int
}

func (w *fileWindow) reset() {
	w.page = 0
	w.index = 0
	w.indexLast = 0
}

// rowAddr returns the text register of a 1-based list row.
func rowAddr(index int) uint16 {
	return uint16(panel.TxtDescribe0 + 0x30*(index-1))
}

// clearSelection repaints the highlighted row, if any.
func (c *Console) clearSelection() {
	if c.files.index != 0 {
		c.conn.WriteColor(rowAddr(c.files.index), panel.ColorBlue)
		c.files.index = 0
	}
}

// sendFileList pushes the window of entries starting at the given index
// into the list rows. Rows past the end of the directory are blanked.
func (c *Console) sendFileList(start int) {
	n := c.media.FileCount()
	for row := 0; row < fileRows; row++ {
		name := ""
		if start+row < n {
			name = c.media.File(start + row).LongName
		}
		c.conn.WriteText(rowAddr(row+1), name)
	}
}

// selectedEntry returns the media entry under the highlight, if one is.
func (c *Console) selectedEntry() (entry int, ok bool) {
	if c.files.index < 1 || c.files.index > fileRows {
		return 0, false
	}
	i := c.files.page*fileRows + (c.files.index - 1)
	if i >= c.media.FileCount() {
		return 0, false
	}
	return i, true
}

// truncateName bounds a display name for the status-page name register.
func truncateName(name string) string {
	if len(name) > printNameMax {
		return name[:printNameMax]
	}
	return name
}

// extractSelectedFile pulls the path out of a raw panel command body:
// command byte, two address bytes and the word-count byte are stripped,
// and the name runs to exactly the reported body length. Nothing is
// dropped from the tail.
func extractSelectedFile(body []byte, bodyLen int) string {
	if bodyLen > len(body) {
		bodyLen = len(body)
	}
	if bodyLen <= 4 {
		return ""
	}
	return string(body[4:bodyLen])
}

// selectPath reacts to a panel-reported path: a rooted name is a file
// pick, "<" climbs out of a directory, anything else descends into one.
func (c *Console) selectPath(path string) {
	if path == "" {
		return
	}
	switch path[0] {
	case '/':
		c.selectedPath = path
		c.conn.WriteText(panel.TxtPrintName, truncateName(path[1:]))
	case '<':
		c.media.UpDir()
		c.files.reset()
		c.sendFileList(0)
	default:
		c.media.ChangeDir(path)
		c.files.reset()
		c.sendFileList(0)
	}
}

package server

import "strings"

// Dialog presents the lines of an OpenDialog message one at a time, only to
// the member that triggered it. Lines are derived lazily from the message:
// surrounding whitespace is trimmed and blank lines are dropped. The sequence
// is finite and restartable.
type Dialog struct {
	message string
	offset  int
}

func NewDialog(message string) *Dialog {
	return &Dialog{message: message}
}

// Next returns the next line of the dialog. ok is false once the dialog is
// exhausted.
func (d *Dialog) Next() (line string, ok bool) {
	for d.offset < len(d.message) {
		rest := d.message[d.offset:]
		if end := strings.IndexByte(rest, '\n'); end >= 0 {
			line = rest[:end]
			d.offset += end + 1
		} else {
			line = rest
			d.offset = len(d.message)
		}
		if line = strings.TrimSpace(line); line != "" {
			return line, true
		}
	}
	return "", false
}

// Reset restarts the dialog from the first line.
func (d *Dialog) Reset() { d.offset = 0 }

// Package otp implements the segmented one-time-code entry widget as a pure
// value type: six ordered single-digit cells plus a focus index, mutated by
// keystroke- and paste-level transitions. It has no network or rendering
// awareness; presentation surfaces feed raw input in and read cells back out.
package otp

import "strings"

// CodeLength is the number of cells in a code input.
const CodeLength = 6

// Input holds the entry state for one code. Each cell is either empty (0)
// or a single decimal digit. The focus index always points at a valid cell.
//
// An Input is owned by a single flow instance and is not safe for concurrent
// use; callers serialize access the same way they serialize flow submissions.
type Input struct {
	cells [CodeLength]byte
	focus int
}

// NewInput returns an empty input focused on the first cell.
func NewInput() *Input {
	return &Input{}
}

// CellInput applies a keystroke to the cell at index. Non-digit characters
// are stripped; the first remaining digit becomes the cell value. If the
// cell ends up non-empty and index is not the last cell, focus advances to
// the next cell. A stroke that strips to nothing clears the cell and leaves
// focus where it is. Out-of-range indexes are ignored.
func (in *Input) CellInput(index int, raw string) {
	if index < 0 || index >= CodeLength {
		return
	}
	d := digitsOnly(raw)
	if d == "" {
		in.cells[index] = 0
		return
	}
	in.cells[index] = d[0]
	if index < CodeLength-1 {
		in.focus = index + 1
	}
}

// CellBackspace handles a backspace pressed in the cell at index: when the
// cell is already empty and it is not the first one, focus moves one cell
// left. Clearing a non-empty cell is the host field's job, so everything
// else is a no-op. Focus never changes on a non-empty cell.
func (in *Input) CellBackspace(index int) {
	if index <= 0 || index >= CodeLength {
		return
	}
	if in.cells[index] == 0 {
		in.focus = index - 1
	}
}

// Paste applies pasted text: non-digits are stripped (codes copied from
// email clients often carry spaces or dashes), the result is truncated to
// the first six digits and written left-to-right from cell 0, overwriting
// what was there. Cells beyond the pasted length keep their values. Focus
// lands on min(pasted, 5). A paste with no digits changes nothing.
func (in *Input) Paste(raw string) {
	d := digitsOnly(raw)
	if d == "" {
		return
	}
	if len(d) > CodeLength {
		d = d[:CodeLength]
	}
	for i := 0; i < len(d); i++ {
		in.cells[i] = d[i]
	}
	in.focus = len(d)
	if in.focus > CodeLength-1 {
		in.focus = CodeLength - 1
	}
}

// Code concatenates the cell values in order, skipping empty cells.
// Completeness is the caller's concern, see Complete.
func (in *Input) Code() string {
	var b strings.Builder
	for _, c := range in.cells {
		if c != 0 {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Complete reports whether every cell holds exactly one digit.
func (in *Input) Complete() bool {
	for _, c := range in.cells {
		if c == 0 {
			return false
		}
	}
	return true
}

// Focus returns the index of the currently focused cell.
func (in *Input) Focus() int {
	return in.focus
}

// Cells returns a snapshot of the cell values for rendering; empty cells
// are empty strings.
func (in *Input) Cells() [CodeLength]string {
	var out [CodeLength]string
	for i, c := range in.cells {
		if c != 0 {
			out[i] = string(c)
		}
	}
	return out
}

// Clear empties every cell and returns focus to the first one.
func (in *Input) Clear() {
	*in = Input{}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

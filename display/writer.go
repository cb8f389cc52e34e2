// SPDX-License-Identifier: EPL-2.0

package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/ik5/tonefeed/payload"
)

// Writer prints one line per message.
type Writer struct {
	mu      sync.Mutex
	w       io.Writer
	newline string
}

// NewWriter prints LF terminated lines to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, newline: "\n"}
}

// Display writes one "identity: body" line.
func (w *Writer) Display(msg payload.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := fmt.Fprintf(w.w, "%s: %s%s", printable(msg.Identity), printable(msg.Body), w.newline)
	if err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	return nil
}

// printable keeps decoded bytes from driving the terminal.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '.'
		}
		return r
	}, s)
}

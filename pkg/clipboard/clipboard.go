// Package clipboard writes text to the user's clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnsupported is returned when the platform has no clipboard utility.
var ErrUnsupported = errors.New("system clipboard is not available")

// Writer places text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System uses the platform clipboard (pbcopy, xclip, xsel, wl-copy, clip.exe).
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write system clipboard: %w", err)
	}

	return nil
}

// OSC52 asks the terminal to set its clipboard with an OSC 52 escape sequence.
// It works over SSH where no clipboard utility exists.
type OSC52 struct {
	Out io.Writer
	// Tmux wraps the sequence in a tmux passthrough.
	Tmux bool
}

func (o OSC52) WriteAll(text string) error {
	out := o.Out
	if out == nil {
		out = os.Stderr
	}

	seq := osc52.New(text)
	if o.Tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(out); err != nil {
		return fmt.Errorf("write osc52 sequence: %w", err)
	}

	return nil
}

// Fallback tries Primary first; if it returns an error, tries Secondary.
type Fallback struct {
	Primary   Writer
	Secondary Writer
}

func (f Fallback) WriteAll(text string) error {
	if f.Primary == nil {
		if f.Secondary == nil {
			return ErrUnsupported
		}
		return f.Secondary.WriteAll(text)
	}

	err := f.Primary.WriteAll(text)
	if err != nil && f.Secondary != nil {
		if secondaryErr := f.Secondary.WriteAll(text); secondaryErr != nil {
			return errors.Join(err, secondaryErr)
		}
		return nil
	}

	return err
}

// Default returns the system clipboard with an OSC 52 fallback on stderr.
// Inside tmux the sequence is wrapped for passthrough.
func Default() Writer {
	return Fallback{
		Primary:   System{},
		Secondary: OSC52{Out: os.Stderr, Tmux: os.Getenv("TMUX") != ""},
	}
}

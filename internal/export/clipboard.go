package export

import (
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
)

// CopyToClipboard writes the content to the terminal clipboard using OSC52.
// The writer defaults to stdout when nil.
func CopyToClipboard(content string, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	seq := osc52.New(content)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	_, err := seq.WriteTo(w)
	return err
}

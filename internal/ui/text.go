// Package ui draws positions and reads moves for the interactive game, either
// as plain text on a stream or on a full terminal screen.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/engine"
)

// Display is the surface an interactive game talks to.
type Display interface {
	// Draw shows pos with a status line underneath.
	Draw(pos *engine.Position, status string) error
	// Message shows one line of feedback.
	Message(text string) error
	// ReadLine prompts for and returns one line of input without the
	// trailing newline. It returns io.EOF when input is exhausted.
	ReadLine(prompt string) (string, error)
	Close() error
}

// BoardString renders b with rank 8 on top, one rank per line, each rank
// prefixed by its number and a file legend underneath. Pieces are Unicode
// glyphs unless ascii is set, in which case FEN letters are used. Empty
// squares are dots.
func BoardString(b *chess.Board, ascii bool) string {
	var sb strings.Builder
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		sb.WriteByte(byte(chess.RankBase + rank))
		for file := 0; file < chess.BoardSize; file++ {
			p := b.Squares[rank][file]
			sb.WriteByte(' ')
			if ascii {
				sb.WriteByte(p.Letter())
			} else {
				sb.WriteRune(p.Glyph())
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(" ")
	for file := 0; file < chess.BoardSize; file++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte(chess.FileBase + file))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// TextDisplay writes boards and messages to a stream and reads moves line by
// line.
type TextDisplay struct {
	w     io.Writer
	in    *bufio.Scanner
	ascii bool
}

// TextOption configures a TextDisplay.
type TextOption func(*TextDisplay)

// WithASCII draws pieces as FEN letters instead of Unicode glyphs.
func WithASCII() TextOption {
	return func(d *TextDisplay) {
		d.ascii = true
	}
}

// NewTextDisplay creates a display reading from r and writing to w.
func NewTextDisplay(r io.Reader, w io.Writer, opts ...TextOption) *TextDisplay {
	d := &TextDisplay{w: w, in: bufio.NewScanner(r)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Draw prints the board between blank lines followed by status.
func (d *TextDisplay) Draw(pos *engine.Position, status string) error {
	_, err := fmt.Fprintf(d.w, "\n%s\n%s\n", BoardString(&pos.Board, d.ascii), status)
	return err
}

// Message prints text on its own line.
func (d *TextDisplay) Message(text string) error {
	_, err := fmt.Fprintln(d.w, text)
	return err
}

// ReadLine prints prompt and reads the next line.
func (d *TextDisplay) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(d.w, prompt); err != nil {
		return "", err
	}
	if !d.in.Scan() {
		if err := d.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(d.in.Text()), nil
}

// Close does nothing; the streams belong to the caller.
func (d *TextDisplay) Close() error {
	return nil
}

package ui

import (
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/engine"
)

// Screen layout, in cells.
const (
	boardLeft  = 2 // first column after the rank labels
	cellWidth  = 3
	statusRow  = chess.BoardSize + 2
	messageRow = statusRow + 1
	promptRow  = messageRow + 1
)

// ScreenDisplay draws the board on a full terminal screen with shaded
// squares and reads moves from key events.
type ScreenDisplay struct {
	screen tcell.Screen
	light  tcell.Style
	dark   tcell.Style
	text   tcell.Style
}

// NewScreenDisplay initialises screen and takes ownership of it; Close
// restores the terminal.
func NewScreenDisplay(screen tcell.Screen) (*ScreenDisplay, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	base := tcell.StyleDefault.Foreground(tcell.ColorBlack)
	return &ScreenDisplay{
		screen: screen,
		light:  base.Background(tcell.ColorBurlyWood),
		dark:   base.Background(tcell.ColorSaddleBrown),
		text:   tcell.StyleDefault,
	}, nil
}

// OpenScreen opens the controlling terminal.
func OpenScreen() (*ScreenDisplay, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenDisplay(screen)
}

// squareOrigin returns the screen cell holding the glyph of sq.
func squareOrigin(sq chess.Square) (x, y int) {
	return boardLeft + sq.File*cellWidth + 1, chess.BoardSize - 1 - sq.Rank
}

// Draw redraws the whole screen with pos and status.
func (d *ScreenDisplay) Draw(pos *engine.Position, status string) error {
	d.screen.Clear()
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			sq := chess.Sq(rank, file)
			style := d.dark
			if (rank+file)%2 == 1 {
				style = d.light
			}
			x, y := squareOrigin(sq)
			glyph := ' '
			if p := pos.Board.At(sq); !p.IsEmpty() {
				glyph = p.Glyph()
			}
			d.screen.SetContent(x-1, y, ' ', nil, style)
			d.screen.SetContent(x, y, glyph, nil, style.Bold(true))
			d.screen.SetContent(x+1, y, ' ', nil, style)
		}
		_, y := squareOrigin(chess.Sq(rank, 0))
		d.screen.SetContent(0, y, rune(chess.RankBase+rank), nil, d.text)
	}
	for file := 0; file < chess.BoardSize; file++ {
		x, _ := squareOrigin(chess.Sq(0, file))
		d.screen.SetContent(x, chess.BoardSize, rune(chess.FileBase+file), nil, d.text)
	}
	d.putLine(statusRow, status)
	d.screen.Show()
	return nil
}

// Message shows text under the status line.
func (d *ScreenDisplay) Message(text string) error {
	d.putLine(messageRow, text)
	d.screen.Show()
	return nil
}

// ReadLine echoes typed keys after prompt until Enter. Escape and Ctrl-C
// return io.EOF.
func (d *ScreenDisplay) ReadLine(prompt string) (string, error) {
	var line []rune
	for {
		d.putLine(promptRow, prompt+string(line))
		d.screen.ShowCursor(len([]rune(prompt))+len(line), promptRow)
		d.screen.Show()

		ev := d.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return "", io.EOF
		case *tcell.EventResize:
			d.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEnter:
				d.putLine(promptRow, "")
				return string(line), nil
			case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlD:
				return "", io.EOF
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(line) > 0 {
					line = line[:len(line)-1]
				}
			case tcell.KeyRune:
				line = append(line, ev.Rune())
			}
		}
	}
}

// Close restores the terminal.
func (d *ScreenDisplay) Close() error {
	d.screen.Fini()
	return nil
}

// putLine replaces row with text.
func (d *ScreenDisplay) putLine(row int, text string) {
	width, _ := d.screen.Size()
	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		d.screen.SetContent(x, row, r, nil, d.text)
		x++
	}
	for ; x < width; x++ {
		d.screen.SetContent(x, row, ' ', nil, d.text)
	}
}

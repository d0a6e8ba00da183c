// Package output writes stored games as PGN or JSON.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/engine"
	"github.com/lgbarn/pinpawn-go/internal/storage"
)

// OutputWriter handles formatted output with line length control. The first
// write error is kept and later writes are skipped.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			o.NewLine()
		} else {
			o.print(" ")
			o.lineLength++
		}
	}

	o.print(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	o.print("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first write error.
func (o *OutputWriter) Err() error {
	return o.err
}

func (o *OutputWriter) print(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// Tag is one PGN header pair.
type Tag struct {
	Name  string
	Value string
}

// Tags returns the header of rec: the seven tag roster, the setup tags when
// the game did not start from the initial position, then the termination
// and ply count.
func Tags(rec *storage.GameRecord) []Tag {
	date := "????.??.??"
	if !rec.PlayedAt.IsZero() {
		date = rec.PlayedAt.UTC().Format("2006.01.02")
	}

	roster := map[string]string{
		chess.EventTag:  "pinpawn game",
		chess.SiteTag:   "?",
		chess.DateTag:   date,
		chess.RoundTag:  "-",
		chess.WhiteTag:  playerName(rec.WhiteDepth),
		chess.BlackTag:  playerName(rec.BlackDepth),
		chess.ResultTag: gameResult(rec),
	}
	tags := make([]Tag, 0, len(chess.SevenTagRoster)+4)
	for _, name := range chess.SevenTagRoster {
		tags = append(tags, Tag{name, roster[name]})
	}
	if rec.StartFEN != "" && rec.StartFEN != engine.InitialFEN {
		tags = append(tags, Tag{chess.SetUpTag, "1"}, Tag{chess.FENTag, rec.StartFEN})
	}
	if rec.Termination != "" {
		tags = append(tags, Tag{chess.TerminationTag, string(rec.Termination)})
	}
	return append(tags, Tag{chess.PlyCountTag, strconv.Itoa(len(rec.Moves))})
}

func playerName(depth int) string {
	if depth == storage.HumanDepth {
		return "Human"
	}
	return fmt.Sprintf("pinpawn depth %d", depth)
}

func gameResult(rec *storage.GameRecord) string {
	if rec.Result == "" {
		return "*"
	}
	return rec.Result
}

// WritePGN writes rec as a PGN game whose movetext uses long algebraic
// moves, wrapped at maxLineLength.
func WritePGN(w io.Writer, rec *storage.GameRecord, maxLineLength int) error {
	ow := NewOutputWriter(w, maxLineLength)

	for _, tag := range Tags(rec) {
		ow.print(fmt.Sprintf("[%s \"%s\"]\n", tag.Name, escapeTagValue(tag.Value)))
	}
	// Blank line between tags and moves
	ow.print("\n")

	outputMoves(rec, ow)

	// Blank line between games
	ow.print("\n")
	return ow.Err()
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// outputMoves writes the numbered movetext followed by the result.
func outputMoves(rec *storage.GameRecord, ow *OutputWriter) {
	moveNum := 1
	isWhite := !blackToMove(rec.StartFEN)

	for i, move := range rec.Moves {
		if isWhite {
			ow.Write(fmt.Sprintf("%d.", moveNum))
		} else if i == 0 {
			// Black to move at start
			ow.Write(fmt.Sprintf("%d...", moveNum))
		}
		ow.Write(move)

		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}

	ow.Write(gameResult(rec))
	ow.NewLine()
}

func blackToMove(fen string) bool {
	fields := strings.Fields(fen)
	return len(fields) > 1 && fields[1] == "b"
}

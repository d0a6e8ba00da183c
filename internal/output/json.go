package output

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/engine"
	"github.com/lgbarn/pinpawn-go/internal/storage"
)

// JSONGame is the JSON form of a stored game.
type JSONGame struct {
	ID          string            `json:"id,omitempty"`
	Tags        map[string]string `json:"tags"`
	StartFEN    string            `json:"start_fen"`
	Moves       []JSONMove        `json:"moves"`
	Result      string            `json:"result"`
	Termination string            `json:"termination,omitempty"`
	Seed        int64             `json:"seed,omitempty"`
}

// JSONMove describes one replayed move.
type JSONMove struct {
	MoveNumber int    `json:"move_number,omitempty"`
	Color      string `json:"color"`
	Move       string `json:"move"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	Check      bool   `json:"check,omitempty"`
	Checkmate  bool   `json:"checkmate,omitempty"`
	FEN        string `json:"fen,omitempty"`
}

// JSONOutput wraps a batch of games.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON replays rec from its start position and describes every move.
// It fails when a stored move is not legal in the replayed position.
func GameToJSON(rec *storage.GameRecord, includeFEN bool) (*JSONGame, error) {
	game, err := startGame(rec.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", rec.ID, err)
	}

	tags := make(map[string]string)
	for _, tag := range Tags(rec) {
		tags[tag.Name] = tag.Value
	}
	jg := &JSONGame{
		ID:          rec.ID,
		Tags:        tags,
		StartFEN:    game.StartFEN(),
		Moves:       make([]JSONMove, 0, len(rec.Moves)),
		Result:      gameResult(rec),
		Termination: string(rec.Termination),
		Seed:        rec.Seed,
	}

	moveNum := 1
	for i, text := range rec.Moves {
		jm, err := convertSingleMove(game, text, includeFEN)
		if err != nil {
			return nil, fmt.Errorf("game %s ply %d: %w", rec.ID, i+1, err)
		}
		if jm.Color == "white" {
			jm.MoveNumber = moveNum
		} else {
			moveNum++
		}
		jg.Moves = append(jg.Moves, jm)
	}
	return jg, nil
}

func startGame(fen string) (*engine.Game, error) {
	if fen == "" {
		return engine.NewGame(), nil
	}
	return engine.NewGameFromFEN(fen)
}

// convertSingleMove plays text in game and describes it.
func convertSingleMove(game *engine.Game, text string, includeFEN bool) (JSONMove, error) {
	move, err := chess.ParseMove(text)
	if err != nil {
		return JSONMove{}, err
	}

	before := game.Position()
	piece := before.Board.At(move.From)
	jm := JSONMove{
		Color:    strings.ToLower(before.ToMove.String()),
		Move:     text,
		From:     move.From.String(),
		To:       move.To.String(),
		Piece:    pieceTypeName(piece.Role),
		Captured: getCapturedPiece(before, piece, move.To),
	}

	status, err := game.Play(move)
	if err != nil {
		return JSONMove{}, err
	}

	played := game.Moves()[len(game.Moves())-1]
	if played.Promotion != chess.NoRole {
		jm.Promotion = pieceTypeName(played.Promotion)
	}
	jm.Check = status == engine.Check
	jm.Checkmate = status == engine.Checkmate
	if includeFEN {
		jm.FEN = game.Position().ToFEN()
	}
	return jm, nil
}

// getCapturedPiece names the piece taken by moving piece to dst, including
// a pawn taken en passant.
func getCapturedPiece(pos *engine.Position, piece chess.Piece, dst chess.Square) string {
	if target := pos.Board.At(dst); !target.IsEmpty() {
		return pieceTypeName(target.Role)
	}
	if piece.Role == chess.Pawn && pos.HasEnPassant() && dst == pos.EnPassant {
		return pieceTypeName(chess.Pawn)
	}
	return ""
}

func pieceTypeName(r chess.Role) string {
	return strings.ToLower(r.String())
}

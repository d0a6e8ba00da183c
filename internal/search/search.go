package search

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/engine"
)

const (
	// MateScore is the base score of a checkmate. The remaining search depth
	// is added so that quicker mates score further from zero.
	MateScore = 50000

	// Infinity bounds the alpha-beta window. Every reachable score lies
	// strictly inside it.
	Infinity = 100000
)

// Result describes the outcome of a search from the root position.
type Result struct {
	Move  chess.Move
	Score int // from White's point of view
	Nodes int
	Found bool // false when the side to move has no legal moves
}

// Searcher runs minimax searches. It is not safe for concurrent use; give
// each goroutine its own Searcher.
type Searcher struct {
	rng    *rand.Rand
	logger *slog.Logger
	nodes  int
	err    error
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger used for search summaries.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSearcher creates a searcher that shuffles move order with rng. A nil
// rng is replaced by one seeded from the clock.
func NewSearcher(rng *rand.Rand, opts ...Option) *Searcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Searcher{
		rng:    rng,
		logger: slog.Default().With("component", "search"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSeeded creates a searcher with a deterministic move order.
func NewSeeded(seed int64, opts ...Option) *Searcher {
	return NewSearcher(rand.New(rand.NewSource(seed)), opts...)
}

// Choose picks a move at the given difficulty. Difficulty 0 or below plays a
// uniformly random legal move; any higher value searches that many plies.
func (s *Searcher) Choose(pos *engine.Position, difficulty int) (chess.Move, bool, error) {
	if difficulty <= 0 {
		return s.RandomMove(pos)
	}
	return s.BestMove(pos, difficulty)
}

// RandomMove returns a uniformly random legal move for the side to move.
// Like Search, it rejects a position missing either king.
func (s *Searcher) RandomMove(pos *engine.Position) (chess.Move, bool, error) {
	if err := requireKings(pos); err != nil {
		return chess.Move{}, false, err
	}
	moves := pos.LegalMoves(pos.ToMove)
	if len(moves) == 0 {
		return chess.Move{}, false, nil
	}
	return moves[s.rng.Intn(len(moves))], true, nil
}

// requireKings returns an error wrapping errors.ErrNoKingFound unless both
// kings are on the board.
func requireKings(pos *engine.Position) error {
	for _, colour := range [...]chess.Colour{chess.White, chess.Black} {
		if _, err := pos.KingSquare(colour); err != nil {
			return err
		}
	}
	return nil
}

// BestMove searches depth plies and returns the best move for the side to
// move. It reports false when there is no legal move. The caller's position
// is not modified.
func (s *Searcher) BestMove(pos *engine.Position, depth int) (chess.Move, bool, error) {
	res, err := s.Search(pos, depth)
	return res.Move, res.Found, err
}

// Search is BestMove with the root score and node count. White maximizes and
// Black minimizes. A position missing either king is rejected with an error
// wrapping errors.ErrNoKingFound.
func (s *Searcher) Search(pos *engine.Position, depth int) (Result, error) {
	if depth < 1 {
		depth = 1
	}
	if err := requireKings(pos); err != nil {
		return Result{}, err
	}
	root := pos.Clone()

	moves := root.LegalMoves(root.ToMove)
	if len(moves) == 0 {
		return Result{}, nil
	}
	s.shuffle(moves)
	s.nodes = 1
	s.err = nil

	maximizing := root.ToMove == chess.White
	alpha, beta := -Infinity, Infinity
	best := Result{Found: true, Move: moves[0], Score: Infinity + 1}
	if maximizing {
		best.Score = -Infinity - 1
	}

	for _, m := range moves {
		undo := root.MakeMove(m)
		score := s.minimax(root, depth-1, alpha, beta, !maximizing)
		root.UnmakeMove(undo)

		if maximizing {
			if score > best.Score {
				best.Score, best.Move = score, m
			}
			alpha = max(alpha, score)
		} else {
			if score < best.Score {
				best.Score, best.Move = score, m
			}
			beta = min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}
	best.Nodes = s.nodes

	if s.err != nil {
		return Result{}, s.err
	}
	s.logger.Debug("search complete",
		"depth", depth,
		"side", root.ToMove,
		"move", best.Move.String(),
		"score", best.Score,
		"nodes", best.Nodes,
	)
	return best, nil
}

// Minimax returns the alpha-beta score of pos searched depth plies deep,
// from White's point of view. maximizing must be true when White is to move.
// pos is used as scratch space and is restored before returning.
func (s *Searcher) Minimax(pos *engine.Position, depth, alpha, beta int, maximizing bool) int {
	return s.minimax(pos, depth, alpha, beta, maximizing)
}

func (s *Searcher) minimax(pos *engine.Position, depth, alpha, beta int, maximizing bool) int {
	s.nodes++
	if depth == 0 {
		return Evaluate(pos)
	}

	moves := pos.LegalMoves(pos.ToMove)
	if len(moves) == 0 {
		return s.terminalScore(pos, depth, maximizing)
	}
	s.shuffle(moves)

	if maximizing {
		value := -Infinity
		for _, m := range moves {
			undo := pos.MakeMove(m)
			value = max(value, s.minimax(pos, depth-1, alpha, beta, false))
			pos.UnmakeMove(undo)
			alpha = max(alpha, value)
			if beta <= alpha {
				break
			}
		}
		return value
	}

	value := Infinity
	for _, m := range moves {
		undo := pos.MakeMove(m)
		value = min(value, s.minimax(pos, depth-1, alpha, beta, true))
		pos.UnmakeMove(undo)
		beta = min(beta, value)
		if beta <= alpha {
			break
		}
	}
	return value
}

// terminalScore scores a position without legal moves: a mate for the
// opponent when in check, otherwise a stalemate draw.
func (s *Searcher) terminalScore(pos *engine.Position, depth int, maximizing bool) int {
	inCheck, err := pos.InCheck(pos.ToMove)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return 0
	}
	if !inCheck {
		return 0
	}
	if maximizing {
		return -(MateScore + depth)
	}
	return MateScore + depth
}

func (s *Searcher) shuffle(moves []chess.Move) {
	s.rng.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})
}

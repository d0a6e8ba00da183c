package engine

import "github.com/lgbarn/pinpawn-go/internal/chess"

var promotionRoles = [...]chess.Role{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Each promotion counts once per promotion role, so totals match the
// published reference numbers.
func (p *Position) Perft(depth int) int {
	if depth <= 0 {
		return 1
	}
	nodes := 0
	for _, m := range p.LegalMoves(p.ToMove) {
		if !p.IsPromotion(m) {
			nodes += p.perftChild(m, depth)
			continue
		}
		for _, role := range promotionRoles {
			m.Promotion = role
			nodes += p.perftChild(m, depth)
		}
	}
	return nodes
}

func (p *Position) perftChild(m chess.Move, depth int) int {
	if depth == 1 {
		return 1
	}
	undo := p.MakeMove(m)
	n := p.Perft(depth - 1)
	p.UnmakeMove(undo)
	return n
}

// Divide returns the perft count below each root move, keyed by move text.
func (p *Position) Divide(depth int) map[string]int {
	counts := make(map[string]int)
	if depth <= 0 {
		return counts
	}
	for _, m := range p.LegalMoves(p.ToMove) {
		if !p.IsPromotion(m) {
			counts[m.String()] = p.perftChild(m, depth)
			continue
		}
		for _, role := range promotionRoles {
			m.Promotion = role
			counts[m.String()] = p.perftChild(m, depth)
		}
	}
	return counts
}

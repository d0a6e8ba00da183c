// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// NumColours is the number of playing sides.
const NumColours = 2

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns +1 for White, -1 for Black (for pawn direction).
func (c Colour) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank index of the colour.
func (c Colour) HomeRank() int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// PawnRank returns the rank index pawns of the colour start on.
func (c Colour) PawnRank() int {
	return c.HomeRank() + c.Forward()
}

// PromotionRank returns the rank index on which pawns of the colour promote.
func (c Colour) PromotionRank() int {
	return c.Opposite().HomeRank()
}

// Role represents a chess piece type.
type Role int

const (
	NoRole Role = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumRoles
)

// String returns the string representation of a role.
func (r Role) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if r >= 0 && int(r) < len(names) {
		return names[r]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a role (uppercase).
func (r Role) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if r >= 0 && int(r) < len(letters) {
		return letters[r]
	}
	return '?'
}

// IsSlider reports whether the role moves along open lines.
func (r Role) IsSlider() bool {
	return r == Rook || r == Bishop || r == Queen
}

// RoleFromLetter converts a piece letter of either case to a role.
func RoleFromLetter(c byte) Role {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'P', 'p':
		return Pawn
	default:
		return NoRole
	}
}

// Piece is an immutable colour and role pair. The zero value is an empty square.
type Piece struct {
	Colour Colour
	Role   Role
}

// NoPiece marks an empty square.
var NoPiece = Piece{}

// NewPiece creates a piece value.
func NewPiece(colour Colour, role Role) Piece {
	return Piece{Colour: colour, Role: role}
}

// W creates a white piece.
func W(role Role) Piece {
	return NewPiece(White, role)
}

// B creates a black piece.
func B(role Role) Piece {
	return NewPiece(Black, role)
}

// IsEmpty reports whether p marks an empty square.
func (p Piece) IsEmpty() bool {
	return p.Role == NoRole
}

// Is reports whether p is a piece of the given colour and role.
func (p Piece) Is(colour Colour, role Role) bool {
	return p.Role == role && p.Colour == colour
}

// Letter returns the FEN letter: uppercase for White, lowercase for Black.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return '.'
	}
	letter := p.Role.Letter()
	if p.Colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}

var glyphs = [NumColours][NumRoles]rune{
	White: {'.', '♙', '♘', '♗', '♖', '♕', '♔'},
	Black: {'.', '♟', '♞', '♝', '♜', '♛', '♚'},
}

// Glyph returns the Unicode chess symbol for the piece, or '.' when empty.
func (p Piece) Glyph() rune {
	if p.IsEmpty() || p.Role < 0 || p.Role >= NumRoles {
		return '.'
	}
	return glyphs[p.Colour][p.Role]
}

// String returns a readable name such as "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Role.String()
}

// Board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	RankBase = '1'
	FileBase = 'a'
)

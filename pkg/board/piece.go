package board

import "fmt"

// Role is a piece type without color: Pawn, Knight, Bishop, Rook, Queen or King.
type Role uint8

const (
	Pawn Role = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

const NumRoles Role = 6

func (r Role) IsValid() bool {
	return r <= King
}

func (r Role) String() string {
	switch r {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

func ParseRole(r rune) (Role, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return 0, false
	}
}

// Piece is one of the 12 (role, side) combinations. Piece mod 6 yields the Role, Piece div 6
// yields the Side (spec.md §3, "Piece"). This layout lets the 12 position bitboards be indexed
// directly by Piece without a side/role pair lookup.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
)

const NumPieces Piece = 12

// MakePiece composes a Piece from a side and a role.
func MakePiece(s Side, r Role) Piece {
	return Piece(s)*6 + Piece(r)
}

func (p Piece) Role() Role {
	return Role(p % 6)
}

func (p Piece) Side() Side {
	return Side(p / 6)
}

// Reflect swaps the piece's side, keeping its role (spec.md §3: "Reflection adds 6 mod 12").
func (p Piece) Reflect() Piece {
	return (p + 6) % 12
}

func (p Piece) String() string {
	if p.Side() == White {
		switch p.Role() {
		case Pawn:
			return "P"
		case Knight:
			return "N"
		case Bishop:
			return "B"
		case Rook:
			return "R"
		case Queen:
			return "Q"
		case King:
			return "K"
		}
	}
	return p.Role().String()
}

func ParsePiece(r rune) (Piece, bool) {
	role, ok := ParseRole(r)
	if !ok {
		return 0, false
	}
	if r >= 'a' && r <= 'z' {
		return MakePiece(Black, role), true
	}
	return MakePiece(White, role), true
}

// Placement describes a single piece occupying a square, used to construct a Position.
type Placement struct {
	Square Square
	Piece  Piece
}

func (p Placement) String() string {
	return fmt.Sprintf("%v@%v", p.Piece, p.Square)
}

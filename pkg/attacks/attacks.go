package attacks

import "github.com/maumay/corrosion-go/pkg/board"

var (
	knightTable [board.NumSquares]board.Bitboard
	kingTable   [board.NumSquares]board.Bitboard
	pawnTable   [board.NumSides][board.NumSquares]board.Bitboard
)

func raySet(sq board.Square, dirs []board.Direction) board.Bitboard {
	var b board.Bitboard
	for _, d := range dirs {
		if next, ok := d.Step(sq); ok {
			b = b.Union(board.BitMask(next))
		}
	}
	return b
}

func init() {
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		knightTable[sq] = raySet(sq, board.KnightDirections[:])
		kingTable[sq] = raySet(sq, board.QueenDirections[:])
		pawnTable[board.White][sq] = raySet(sq, []board.Direction{board.NorthEast, board.NorthWest})
		pawnTable[board.Black][sq] = raySet(sq, []board.Direction{board.SouthEast, board.SouthWest})
	}
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq board.Square) board.Bitboard {
	return knightTable[sq]
}

// KingAttacks returns the squares a king on sq attacks (castling excluded; that is handled
// separately by move generation).
func KingAttacks(sq board.Square) board.Bitboard {
	return kingTable[sq]
}

// PawnCaptureAttacks returns the squares a pawn of side s on sq could capture to (ignoring
// whether an enemy piece or en-passant target actually occupies them).
func PawnCaptureAttacks(s board.Side, sq board.Square) board.Bitboard {
	return pawnTable[s][sq]
}

// SlidingAttacks dispatches to the magic-bitboard table for the given role, or the empty
// board for non-sliding roles.
func SlidingAttacks(role board.Role, sq board.Square, occupancy board.Bitboard) board.Bitboard {
	switch role {
	case board.Bishop:
		return BishopAttacks(sq, occupancy)
	case board.Rook:
		return RookAttacks(sq, occupancy)
	case board.Queen:
		return QueenAttacks(sq, occupancy)
	default:
		return board.EmptyBitboard
	}
}

// AttacksOf returns every square attacked by a piece of role r belonging to side s sitting on
// sq, given the full board occupancy. Move generation uses it to ask "what does this piece
// see" for knights and sliders; kings and pawns are looked up through KingAttacks and
// PawnCaptureAttacks directly, and SEE goes through AttackersTo.
func AttacksOf(s board.Side, r board.Role, sq board.Square, occupancy board.Bitboard) board.Bitboard {
	switch r {
	case board.Pawn:
		return PawnCaptureAttacks(s, sq)
	case board.Knight:
		return KnightAttacks(sq)
	case board.King:
		return KingAttacks(sq)
	default:
		return SlidingAttacks(r, sq, occupancy)
	}
}

// IsAttacked reports whether square sq is attacked by any piece of side `by`, given the
// board's piece bitboards indexed by board.Piece and the overall occupancy. Used pervasively
// by move generation to test check and castling-through-check (spec.md §4.3).
func IsAttacked(sq board.Square, by board.Side, pieces *[board.NumPieces]board.Bitboard, occupancy board.Bitboard) bool {
	if PawnCaptureAttacks(by.Opponent(), sq).Intersect(pieces[board.MakePiece(by, board.Pawn)]) != 0 {
		return true
	}
	if KnightAttacks(sq).Intersect(pieces[board.MakePiece(by, board.Knight)]) != 0 {
		return true
	}
	if KingAttacks(sq).Intersect(pieces[board.MakePiece(by, board.King)]) != 0 {
		return true
	}
	bishopsQueens := pieces[board.MakePiece(by, board.Bishop)].Union(pieces[board.MakePiece(by, board.Queen)])
	if BishopAttacks(sq, occupancy).Intersect(bishopsQueens) != 0 {
		return true
	}
	rooksQueens := pieces[board.MakePiece(by, board.Rook)].Union(pieces[board.MakePiece(by, board.Queen)])
	if RookAttacks(sq, occupancy).Intersect(rooksQueens) != 0 {
		return true
	}
	return false
}

// AttackersTo returns every square occupied by a piece of side `by` that attacks sq, given
// full board occupancy. Used by static exchange evaluation to walk the capture sequence.
func AttackersTo(sq board.Square, by board.Side, pieces *[board.NumPieces]board.Bitboard, occupancy board.Bitboard) board.Bitboard {
	var attackers board.Bitboard
	attackers = attackers.Union(PawnCaptureAttacks(by.Opponent(), sq).Intersect(pieces[board.MakePiece(by, board.Pawn)]))
	attackers = attackers.Union(KnightAttacks(sq).Intersect(pieces[board.MakePiece(by, board.Knight)]))
	attackers = attackers.Union(KingAttacks(sq).Intersect(pieces[board.MakePiece(by, board.King)]))
	bishopsQueens := pieces[board.MakePiece(by, board.Bishop)].Union(pieces[board.MakePiece(by, board.Queen)])
	attackers = attackers.Union(BishopAttacks(sq, occupancy).Intersect(bishopsQueens))
	rooksQueens := pieces[board.MakePiece(by, board.Rook)].Union(pieces[board.MakePiece(by, board.Queen)])
	attackers = attackers.Union(RookAttacks(sq, occupancy).Intersect(rooksQueens))
	return attackers
}

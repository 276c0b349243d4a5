package board

import "github.com/maumay/corrosion-go/pkg/attacks"

// GenMode selects which subset of legal moves GenerateMoves returns (spec.md §4.3,
// "All/Attacks/AttacksChecks modes").
type GenMode uint8

const (
	// All generates every legal move.
	All GenMode = iota
	// Captures generates only captures and promotions (used by quiescence search).
	Captures
	// CapturesChecks generates captures, promotions, and non-capturing checks.
	CapturesChecks
)

// IsAttacked reports whether sq is attacked by side `by` in this position.
func (p *Position) IsAttacked(sq Square, by Side) bool {
	return attacks.IsAttacked(sq, by, &p.boards, p.Occupied())
}

// InCheck reports whether side s's king currently sits on an attacked square.
func (p *Position) InCheck(s Side) bool {
	return p.IsAttacked(p.King(s), s.Opponent())
}

// GenerateMoves produces every legal move available to the active side, filtered by mode.
// Generation proceeds in two passes (spec.md §4.3): first every pseudo-legal move is
// enumerated from the attack tables, ignoring whether it leaves the mover's own king in
// check; each candidate is then played with Apply, tested for king safety, and immediately
// reversed with Unapply (copy-make legality filtering, grounded in the teacher's emphasis on
// Apply/Unapply as the position's sole mutation path).
func (p *Position) GenerateMoves(mode GenMode) []Move {
	side := p.active
	candidates := make([]Move, 0, 48)
	p.genPawnMoves(side, mode, &candidates)
	p.genPieceMoves(side, Knight, mode, &candidates)
	p.genPieceMoves(side, Bishop, mode, &candidates)
	p.genPieceMoves(side, Rook, mode, &candidates)
	p.genPieceMoves(side, Queen, mode, &candidates)
	p.genKingMoves(side, mode, &candidates)
	if mode == All {
		p.genCastleMoves(side, &candidates)
	}

	legal := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		d := p.Apply(m)
		quietNonCheck := mode == CapturesChecks && !m.IsCapture() && !m.IsPromotion() && !p.InCheck(side.Opponent())
		if !p.InCheck(side) && !quietNonCheck {
			legal = append(legal, m)
		}
		p.Unapply(d)
	}
	return legal
}

// HasLegalMove reports whether the active side has at least one legal move, by running a full
// All-mode generation; used by checkmate/stalemate detection.
func (p *Position) HasLegalMove() bool {
	return len(p.GenerateMoves(All)) > 0
}

// IsCheckmate reports whether the active side is in check with no legal response.
func (p *Position) IsCheckmate() bool {
	return p.InCheck(p.active) && !p.HasLegalMove()
}

// IsStalemate reports whether the active side is not in check but has no legal move.
func (p *Position) IsStalemate() bool {
	return !p.InCheck(p.active) && !p.HasLegalMove()
}

func destMaskFor(mode GenMode, enemy Bitboard, empty Bitboard) Bitboard {
	switch mode {
	case Captures:
		return enemy
	default:
		return enemy.Union(empty)
	}
}

func (p *Position) genPieceMoves(side Side, role Role, mode GenMode, out *[]Move) {
	piece := MakePiece(side, role)
	occ := p.Occupied()
	enemy := p.SideBoard(side.Opponent())
	empty := occ.Complement()
	dest := destMaskFor(mode, enemy, empty)

	for _, from := range p.boards[piece].Squares() {
		targets := attacks.AttacksOf(side, role, from, occ).Difference(p.SideBoard(side)).Intersect(dest)
		for _, to := range targets.Squares() {
			cap := NoRole
			if c, ok := p.PieceAt(to); ok {
				cap = c.Role()
			}
			*out = append(*out, Move{Kind: Standard, Piece: piece, From: from, To: to, Capture: cap, Promote: NoRole})
		}
	}
}

func (p *Position) genKingMoves(side Side, mode GenMode, out *[]Move) {
	piece := MakePiece(side, King)
	from := p.King(side)
	if from == NoSquare {
		return
	}
	enemy := p.SideBoard(side.Opponent())
	empty := p.Occupied().Complement()
	dest := destMaskFor(mode, enemy, empty)
	targets := attacks.KingAttacks(from).Difference(p.SideBoard(side)).Intersect(dest)
	for _, to := range targets.Squares() {
		cap := NoRole
		if c, ok := p.PieceAt(to); ok {
			cap = c.Role()
		}
		*out = append(*out, Move{Kind: Standard, Piece: piece, From: from, To: to, Capture: cap, Promote: NoRole})
	}
}

func (p *Position) genCastleMoves(side Side, out *[]Move) {
	occ := p.Occupied()
	for _, z := range p.rights.SideZones(side) {
		if z.Unoccupied().Intersect(occ) != EmptyBitboard {
			continue
		}
		blocked := false
		for _, sq := range z.Uncontrolled().Squares() {
			if p.IsAttacked(sq, side.Opponent()) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		*out = append(*out, Move{Kind: Castle, Piece: MakePiece(side, King), From: z.KingSource(), To: z.KingTarget(), Capture: NoRole, Promote: NoRole, Zone: z})
	}
}

func (p *Position) genPawnMoves(side Side, mode GenMode, out *[]Move) {
	piece := MakePiece(side, Pawn)
	occ := p.Occupied()
	empty := occ.Complement()
	enemy := p.SideBoard(side.Opponent())
	promoRank := side.PawnPromotionRank()
	dir := side.PawnDirection()

	for _, from := range p.boards[piece].Squares() {
		// Single and double pushes (in Captures mode, only pushes that promote).
		if one, ok := dir.Step(from); ok && empty.IsSet(one) {
			if mode != Captures || one.Rank() == promoRank {
				p.emitPawnAdvance(piece, from, one, promoRank, out)
			}
			if mode != Captures && from.Rank() == side.PawnStartRank() {
				if two, ok := dir.Step(one); ok && empty.IsSet(two) {
					*out = append(*out, Move{Kind: Standard, Piece: piece, From: from, To: two, Capture: NoRole, Promote: NoRole})
				}
			}
		}

		// Captures, including en-passant.
		targets := attacks.PawnCaptureAttacks(side, from)
		for _, to := range targets.Intersect(enemy).Squares() {
			cap, _ := p.PieceAt(to)
			if to.Rank() == promoRank {
				p.emitPromotions(piece, from, to, cap.Role(), out)
			} else {
				*out = append(*out, Move{Kind: Standard, Piece: piece, From: from, To: to, Capture: cap.Role(), Promote: NoRole})
			}
		}
		if ep, ok := p.EnPassant(); ok && targets.IsSet(ep) {
			*out = append(*out, Move{Kind: EnPassant, Piece: piece, From: from, To: ep, Capture: Pawn, Promote: NoRole})
		}
	}
}

func (p *Position) emitPawnAdvance(piece Piece, from, to Square, promoRank Rank, out *[]Move) {
	if to.Rank() == promoRank {
		p.emitPromotions(piece, from, to, NoRole, out)
		return
	}
	*out = append(*out, Move{Kind: Standard, Piece: piece, From: from, To: to, Capture: NoRole, Promote: NoRole})
}

var promotionRoles = [4]Role{Queen, Rook, Bishop, Knight}

func (p *Position) emitPromotions(piece Piece, from, to Square, capture Role, out *[]Move) {
	for _, role := range promotionRoles {
		*out = append(*out, Move{Kind: Promotion, Piece: piece, From: from, To: to, Capture: capture, Promote: role})
	}
}

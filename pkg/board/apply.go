package board

// Discards records everything Apply destructively overwrites on a Position, so Unapply can
// restore the exact prior state without Position keeping its own undo stack (spec.md §4.4,
// "Apply/Unapply"). A Discards value is only ever valid for undoing the single Apply call
// that produced it, and only when no other Apply has happened to the same Position since.
type Discards struct {
	move      Move
	capture   Role
	captureSq Square // differs from move.To only for en-passant
	rights    CastleZoneSet
	enPassant Square
	halfClock int
	hash      ZobristHash
	castled   bool          // prior Position.castled[side], only ever flips on a Castle move
	history   []ZobristHash // copy of the prior repetition history, truncated or not
}

// Apply plays m on the position in place, returning a Discards record that Unapply needs to
// reverse it. The caller is responsible for only generating m from Position's own legal move
// generator; Apply does not re-validate legality.
func (p *Position) Apply(m Move) Discards {
	d := Discards{
		move:      m,
		capture:   NoRole,
		captureSq: NoSquare,
		rights:    p.rights,
		enPassant: p.enPassant,
		halfClock: p.halfClock,
		hash:      p.hash,
		castled:   p.castled[m.Side()],
		history:   append([]ZobristHash(nil), p.history...),
	}

	side := m.Side()
	opp := side.Opponent()

	nextEnPassant := NoSquare
	irreversible := false
	resetClock := true // false only for castling, which is irreversible but neither a pawn move nor a capture

	switch m.Kind {
	case Standard:
		if cap, ok := p.PieceAt(m.To); ok {
			d.capture = cap.Role()
			d.captureSq = m.To
			p.removePiece(cap, m.To)
			irreversible = true
		}
		p.movePiece(m.Piece, m.From, m.To)
		if m.Piece.Role() == Pawn {
			irreversible = true
			if abs(int(m.To)-int(m.From)) == 16 {
				nextEnPassant = Square((int(m.From) + int(m.To)) / 2)
			}
		}
		p.updateRightsFor(m.Piece, m.From)
		if d.capture != NoRole {
			p.updateRightsForCapture(opp, m.To)
		}

	case Castle:
		zone := m.Zone
		king := MakePiece(side, King)
		rook := MakePiece(side, Rook)
		p.movePiece(king, zone.KingSource(), zone.KingTarget())
		p.movePiece(rook, zone.RookSource(), zone.RookTarget())
		p.rights = p.rights.Difference(sideZoneMask(side))
		p.castled[side] = true
		irreversible = true
		resetClock = false

	case EnPassant:
		capSq := enPassantCaptureSquare(m.To, side)
		d.capture = Pawn
		d.captureSq = capSq
		p.removePiece(MakePiece(opp, Pawn), capSq)
		p.movePiece(m.Piece, m.From, m.To)
		irreversible = true

	case Promotion:
		if cap, ok := p.PieceAt(m.To); ok {
			d.capture = cap.Role()
			d.captureSq = m.To
			p.removePiece(cap, m.To)
			p.updateRightsForCapture(opp, m.To)
		}
		p.removePiece(m.Piece, m.From)
		p.addPiece(MakePiece(side, m.Promote), m.To)
		irreversible = true
	}

	// Incremental Zobrist update (spec.md §4.2): piece-square keys are already folded into
	// p.hash by addPiece/removePiece above; only the side-to-move, castling-rights and
	// en-passant components remain. Rights only ever shrink within Apply, so XOR-ing out the
	// zones that were dropped is the full rights delta.
	for _, z := range d.rights.Difference(p.rights).Zones() {
		p.hash ^= zobristCastleZone(z)
	}
	p.hash ^= zobristEnPassant(d.enPassant)
	p.hash ^= zobristEnPassant(nextEnPassant)
	p.hash ^= zobristSideToMove()

	p.active = opp
	p.enPassant = nextEnPassant
	if irreversible && resetClock {
		p.halfClock = 0
	} else {
		p.halfClock++
	}
	if side == Black {
		p.fullMoves++
	}

	if irreversible {
		p.history = p.history[:0]
	}
	p.history = append(p.history, p.hash)

	return d
}

// Unapply reverses the effect of the Apply call that produced d. It must be called at most
// once per Discards value, on the same Position, with no intervening Apply.
func (p *Position) Unapply(d Discards) {
	m := d.move
	side := m.Side()
	opp := side.Opponent()

	switch m.Kind {
	case Standard:
		p.movePiece(m.Piece, m.To, m.From)
		if d.capture != NoRole {
			p.addPiece(MakePiece(opp, d.capture), d.captureSq)
		}

	case Castle:
		zone := m.Zone
		king := MakePiece(side, King)
		rook := MakePiece(side, Rook)
		p.movePiece(king, zone.KingTarget(), zone.KingSource())
		p.movePiece(rook, zone.RookTarget(), zone.RookSource())

	case EnPassant:
		p.movePiece(m.Piece, m.To, m.From)
		p.addPiece(MakePiece(opp, Pawn), d.captureSq)

	case Promotion:
		p.removePiece(MakePiece(side, m.Promote), m.To)
		p.addPiece(m.Piece, m.From)
		if d.capture != NoRole {
			p.addPiece(MakePiece(opp, d.capture), d.captureSq)
		}
	}

	p.active = side
	p.rights = d.rights
	p.enPassant = d.enPassant
	p.halfClock = d.halfClock
	p.castled[side] = d.castled
	if side == Black {
		p.fullMoves--
	}
	p.hash = d.hash
	p.history = d.history
}

func (p *Position) addPiece(piece Piece, sq Square) {
	p.boards[piece] = p.boards[piece].Union(BitMask(sq))
	p.hash ^= zobristPiece(piece, sq)
}

func (p *Position) removePiece(piece Piece, sq Square) {
	p.boards[piece] = p.boards[piece].Difference(BitMask(sq))
	p.hash ^= zobristPiece(piece, sq)
}

func (p *Position) movePiece(piece Piece, from, to Square) {
	p.removePiece(piece, from)
	p.addPiece(piece, to)
}

// enPassantCaptureSquare returns the square of the pawn actually captured by an en-passant
// move landing on `to`, played by `side`: one rank behind the landing square from side's
// perspective.
func enPassantCaptureSquare(to Square, side Side) Square {
	if side == White {
		return Square(int(to) - 8)
	}
	return Square(int(to) + 8)
}

func sideZoneMask(s Side) CastleZoneSet {
	return FullCastleZoneSet.Intersect(zoneSetOf(KingSideZone(s)).Union(zoneSetOf(QueenSideZone(s))))
}

func zoneSetOf(z CastleZone) CastleZoneSet {
	return EmptyCastleZoneSet.Add(z)
}

// updateRightsFor drops castling rights made stale by a king or rook moving away from its
// home square.
func (p *Position) updateRightsFor(piece Piece, from Square) {
	side := piece.Side()
	switch piece.Role() {
	case King:
		p.rights = p.rights.Difference(sideZoneMask(side))
	case Rook:
		for _, z := range p.rights.SideZones(side) {
			if z.RookSource() == from {
				p.rights = p.rights.Remove(z)
			}
		}
	}
}

// updateRightsForCapture drops a castling right when the captured piece was sitting on a
// rook's home square (the rook itself, captured in place).
func (p *Position) updateRightsForCapture(capturedSide Side, sq Square) {
	for _, z := range p.rights.SideZones(capturedSide) {
		if z.RookSource() == sq {
			p.rights = p.rights.Remove(z)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

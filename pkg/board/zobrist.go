package board

// zobrist implements incremental Zobrist hashing (spec.md §4.2): a fixed pseudorandom
// 64-bit key table covering every (piece, square), the single side-to-move key, the four
// castling-zone keys, and the eight en-passant-file keys. A Position's hash is maintained
// incrementally by XOR-ing the relevant keys in and out as moves are applied and unapplied,
// rather than rebuilt from scratch, so repeated positions (for threefold repetition) can be
// recognised by a simple hash comparison.

// splitmix64 is a fast, fixed-seed PRNG used only to generate the zobrist key table at
// package init time. It has no relation to the search's randomness needs; it exists purely
// to produce a deterministic, well-distributed set of 64-bit constants.
type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

var (
	pieceSquareKeys [NumPieces][NumSquares]uint64
	sideToMoveKey   uint64
	castleZoneKeys  [NumCastleZones]uint64
	enPassantKeys   [NumFiles]uint64
)

func init() {
	SeedZobrist(0xC0FFEE1234567890)
}

// SeedZobrist regenerates the package-level key tables from the given seed. Positions decoded
// before a call to SeedZobrist keep whatever hash they were built with; callers that want a
// non-default seed must call this once at startup, before any position is constructed
// (spec.md §3's engine configuration surface, "WithZobristSeed").
func SeedZobrist(seed uint64) {
	rng := &splitmix64{state: seed}
	for p := Piece(0); p < NumPieces; p++ {
		for sq := ZeroSquare; sq < NumSquares; sq++ {
			pieceSquareKeys[p][sq] = rng.next()
		}
	}
	sideToMoveKey = rng.next()
	for z := CastleZone(0); z < NumCastleZones; z++ {
		castleZoneKeys[z] = rng.next()
	}
	for f := ZeroFile; f < NumFiles; f++ {
		enPassantKeys[f] = rng.next()
	}
}

// ZobristHash is the incrementally-maintained position hash.
type ZobristHash uint64

func zobristPiece(p Piece, sq Square) uint64 {
	return pieceSquareKeys[p][sq]
}

func zobristCastleZone(z CastleZone) uint64 {
	return castleZoneKeys[z]
}

func zobristEnPassant(sq Square) uint64 {
	if !sq.IsValid() {
		return 0
	}
	return enPassantKeys[sq.File()]
}

func zobristSideToMove() uint64 {
	return sideToMoveKey
}

// computeZobrist builds a position's hash from scratch. Used only at construction time
// (e.g. when parsing a FEN); thereafter Position.hash is updated incrementally by apply/unapply.
func computeZobrist(boards *[NumPieces]Bitboard, active Side, rights CastleZoneSet, ep Square) ZobristHash {
	var h uint64
	for p := Piece(0); p < NumPieces; p++ {
		for _, sq := range boards[p].Squares() {
			h ^= zobristPiece(p, sq)
		}
	}
	if active == Black {
		h ^= zobristSideToMove()
	}
	for _, z := range rights.Zones() {
		h ^= zobristCastleZone(z)
	}
	if ep.IsValid() {
		h ^= zobristEnPassant(ep)
	}
	return ZobristHash(h)
}

// Package attacks precomputes the attack tables consumed by move generation and static
// exchange evaluation (spec.md §4.1, "Attack Tables"): fixed tables for pawns, knights and
// kings, and magic-bitboard tables for the sliding pieces (bishop, rook, queen). All tables
// are built once at package init and are then pure, allocation-free lookups.
package attacks

import "github.com/maumay/corrosion-go/pkg/board"

// magicEntry holds the per-square data needed to map an occupancy bitboard to an index into
// the shared attack table for a sliding piece.
type magicEntry struct {
	mask   board.Bitboard
	magic  uint64
	shift  uint
	offset int
}

// Known magic numbers for rooks and bishops, one per square (A1..H8), widely used in the
// bitboard chess engine community.
var rookMagicNumbers = [64]uint64{
	0x8a80104000800020, 0x140002000100040, 0x2801880a0017001, 0x100081001000420, 0x200020010080420, 0x3001c0002010008, 0x8480008002000100, 0x2080088004402900,
	0x800098204000, 0x2024401000200040, 0x100802000801000, 0x120800800801000, 0x208808088000400, 0x2802200800400, 0x2200800100020080, 0x801000060821100,
	0x80044006422000, 0x100808020004000, 0x12108a0010204200, 0x140848010000802, 0x481828014002800, 0x8094004002004100, 0x4010040010010802, 0x20008806104,
	0x100400080208000, 0x2040002120081000, 0x21200680100081, 0x20100080080080, 0x2000a00200410, 0x20080800400, 0x80088400100102, 0x80004600042881,
	0x4040008040800020, 0x440003000200801, 0x4200011004500, 0x188020010100100, 0x14800401802800, 0x2080040080800200, 0x124080204001001, 0x200046502000484,
	0x480400080088020, 0x1000422010034000, 0x30200100110040, 0x100021010009, 0x2002080100110004, 0x202008004008002, 0x20020004010100, 0x2048440040820001,
	0x101002200408200, 0x40802000401080, 0x4008142004410100, 0x2060820c0120200, 0x1001004080100, 0x20c020080040080, 0x2935610830022400, 0x44440041009200,
	0x280001040802101, 0x2100190040002085, 0x80c0084100102001, 0x4024081001000421, 0x20030a0244872, 0x12001008414402, 0x2006104900a0804, 0x1004081002402,
}

var bishopMagicNumbers = [64]uint64{
	0x40040844404084, 0x2004208a004208, 0x10190041080202, 0x108060845042010, 0x581104180800210, 0x2112080446200010, 0x1080820820060210, 0x3c0808410220200,
	0x4050404440404, 0x21001420088, 0x24d0080801082102, 0x1020a0a020400, 0x40308200402, 0x4011002100800, 0x401484104104005, 0x801010402020200,
	0x400210c3880100, 0x404022024108200, 0x810018200204102, 0x4002801a02003, 0x85040820080400, 0x810102c808880400, 0xe900410884800, 0x8002020480840102,
	0x220200865090201, 0x2010100a02021202, 0x152048408022401, 0x20080002081110, 0x4001001021004000, 0x800040400a011002, 0xe4004081011002, 0x1c004001012080,
	0x8004200962a00220, 0x8422100208500202, 0x2000402200300c08, 0x8646020080080080, 0x80020a0200100808, 0x2010004880111000, 0x623000a080011400, 0x42008c0340209202,
	0x209188240001000, 0x400408a884001800, 0x110400a6080400, 0x1840060a44020800, 0x90080104000041, 0x201011000808101, 0x1a2208080504f080, 0x8012020600211212,
	0x500861011240000, 0x180806108200800, 0x4000020e01040044, 0x300000261044000a, 0x802241102020002, 0x20906061210001, 0x5a84841004010310, 0x4010801011c04,
	0xa010109502200, 0x4a02012000, 0x500201010098b028, 0x8040002811040900, 0x28000010020204, 0x6000020202d0240, 0x8918844842082200, 0x4010011029020020,
}

var (
	rookMagics   [64]magicEntry
	bishopMagics [64]magicEntry
	rookTable    []board.Bitboard
	bishopTable  []board.Bitboard
)

// relevantOccupancy returns the ray squares whose occupancy can change the attack set, which
// excludes the final (board-edge) square of each ray: a piece there never blocks anything
// further, so its occupancy is irrelevant to the lookup.
func relevantOccupancy(sq board.Square, dirs [4]board.Direction) board.Bitboard {
	var mask board.Bitboard
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := d.Step(cur)
			if !ok {
				break
			}
			cur = next
			if _, ok := d.Step(cur); !ok {
				break
			}
			mask = mask.Union(board.BitMask(cur))
		}
	}
	return mask
}

func slideAttacks(sq board.Square, dirs [4]board.Direction, occupancy board.Bitboard) board.Bitboard {
	var attacks board.Bitboard
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := d.Step(cur)
			if !ok {
				break
			}
			cur = next
			attacks = attacks.Union(board.BitMask(cur))
			if occupancy.IsSet(cur) {
				break
			}
		}
	}
	return attacks
}

// indexToOccupancy expands the index-th subset of mask's set bits into a bitboard; iterating
// index over [0, 2^popcount(mask)) enumerates every occupancy relevant to that mask.
func indexToOccupancy(index int, mask board.Bitboard) board.Bitboard {
	var occ board.Bitboard
	squares := mask.Squares()
	for i, sq := range squares {
		if index&(1<<i) != 0 {
			occ = occ.Union(board.BitMask(sq))
		}
	}
	return occ
}

func buildMagics(dirs [4]board.Direction, magicNumbers [64]uint64) ([64]magicEntry, []board.Bitboard) {
	var entries [64]magicEntry
	offset := 0
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		mask := relevantOccupancy(sq, dirs)
		bits := mask.PopCount()
		entries[sq] = magicEntry{
			mask:   mask,
			magic:  magicNumbers[sq],
			shift:  uint(64 - bits),
			offset: offset,
		}
		offset += 1 << bits
	}
	table := make([]board.Bitboard, offset)
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		e := entries[sq]
		bits := e.mask.PopCount()
		for i := 0; i < 1<<bits; i++ {
			occ := indexToOccupancy(i, e.mask)
			idx := (uint64(occ) * e.magic) >> e.shift
			table[e.offset+int(idx)] = slideAttacks(sq, dirs, occ)
		}
	}
	return entries, table
}

func init() {
	rookMagics, rookTable = buildMagics(board.RookDirections, rookMagicNumbers)
	bishopMagics, bishopTable = buildMagics(board.BishopDirections, bishopMagicNumbers)
}

func magicIndex(e magicEntry, occupancy board.Bitboard) int {
	relevant := occupancy.Intersect(e.mask)
	return int((uint64(relevant) * e.magic) >> e.shift)
}

// RookAttacks returns the squares a rook on sq attacks given the board's full occupancy.
func RookAttacks(sq board.Square, occupancy board.Bitboard) board.Bitboard {
	e := rookMagics[sq]
	return rookTable[e.offset+magicIndex(e, occupancy)]
}

// BishopAttacks returns the squares a bishop on sq attacks given the board's full occupancy.
func BishopAttacks(sq board.Square, occupancy board.Bitboard) board.Bitboard {
	e := bishopMagics[sq]
	return bishopTable[e.offset+magicIndex(e, occupancy)]
}

// QueenAttacks is the union of the rook and bishop rays from sq.
func QueenAttacks(sq board.Square, occupancy board.Bitboard) board.Bitboard {
	return RookAttacks(sq, occupancy).Union(BishopAttacks(sq, occupancy))
}

// Package fen contains utilities for reading and writing positions in FEN notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/maumay/corrosion-go/pkg/board"
)

const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a Position, which also holds the active side, castling
// rights, en-passant square, half-move clock and full-move counter that FEN carries alongside
// the board itself.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(fen string) (*board.Position, error) {
	// A FEN record contains six space-separated fields.
	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of sections in FEN: '%v'", fen)
	}

	// (1) Piece placement (from white's perspective). Each rank is described, starting with
	// rank 8 and ending with rank 1; within each rank, the contents of each square are
	// described from file a through file h.

	var placements []board.Placement

	rank := int(board.Rank8)
	file := 0
	for _, r := range []rune(parts[0]) {
		switch {
		case r == '/':
			rank--
			file = 0

		case unicode.IsDigit(r):
			file += int(r - '0')

		case unicode.IsLetter(r):
			piece, ok := board.ParsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid piece '%v' in FEN: '%v'", r, fen)
			}
			if file > 7 || rank < 0 {
				return nil, fmt.Errorf("invalid number of squares in FEN: '%v'", fen)
			}
			sq := board.NewSquare(board.File(file), board.Rank(rank))
			placements = append(placements, board.Placement{Square: sq, Piece: piece})
			file++

		default:
			return nil, fmt.Errorf("invalid character in FEN: '%v'", fen)
		}
	}
	if rank != 0 {
		return nil, fmt.Errorf("invalid number of ranks in FEN: '%v'", fen)
	}

	// (2) Active color. "w" means white moves next, "b" means black.

	active, ok := parseSide(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: '%v'", fen)
	}

	// (3) Castling availability. "-" if neither side can castle, else one or more of
	// "K", "Q", "k", "q".

	rights, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling in FEN: '%v'", fen)
	}

	// (4) En passant target square. "-" if none, else the square "behind" a pawn that has
	// just made a two-square advance.

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant in FEN: '%v'", fen)
		}
		ep = sq
	}

	// (5) Halfmove clock: moves since the last pawn advance or capture, for the fifty-move rule.

	halfClock, err := strconv.Atoi(parts[4])
	if err != nil || halfClock < 0 {
		return nil, fmt.Errorf("invalid halfmove clock in FEN: '%v'", fen)
	}

	// (6) Fullmove number, starting at 1 and incremented after Black's move.

	fullMoves, err := strconv.Atoi(parts[5])
	if err != nil || fullMoves < 0 {
		return nil, fmt.Errorf("invalid full move count in FEN: '%v'", fen)
	}

	return board.NewPositionFull(placements, active, rights, ep, halfClock, fullMoves)
}

// Encode renders a position as a FEN record.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for r := int(board.NumRanks) - 1; r >= 0; r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			sq := board.NewSquare(f, board.Rank(r))
			piece, ok := pos.PieceAt(sq)
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(piece.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > 0 {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), pos.ActiveSide(), pos.CastleRights(),
		ep, pos.HalfMoveClock(), pos.FullMoves())
}

func parseSide(str string) (board.Side, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func parseCastling(str string) (board.CastleZoneSet, bool) {
	if str == "-" {
		return board.EmptyCastleZoneSet, true
	}
	ret := board.EmptyCastleZoneSet
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret = ret.Add(board.WhiteKingSide)
		case 'Q':
			ret = ret.Add(board.WhiteQueenSide)
		case 'k':
			ret = ret.Add(board.BlackKingSide)
		case 'q':
			ret = ret.Add(board.BlackQueenSide)
		default:
			return 0, false
		}
	}
	return ret, true
}

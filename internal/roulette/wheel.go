package roulette

import "github.com/osse101/RouletteHouse_Go/internal/domain"

// Wheel maps a reduced random index to the pocket number, in wheel order
// starting from the zero. Odd indices are red pockets.
var Wheel = [WheelSize]uint8{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10,
	5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

// Neighbor tables for grouped inside bets. A bet's selector indexes into
// the table for its kind.
var (
	SplitBets   = buildSplits()
	StreetBets  = buildStreets()
	CornerBets  = buildCorners()
	SixLineBets = buildSixLines()
)

// buildSplits enumerates every horizontally or vertically adjacent pair,
// row by row: the two pairs inside the row, then the three pairs joining it
// to the row below.
func buildSplits() [][2]uint8 {
	splits := make([][2]uint8, 0, 57)
	for row := 0; row < RowCount; row++ {
		b := uint8(row*3 + 1)
		splits = append(splits, [2]uint8{b, b + 1}, [2]uint8{b + 1, b + 2})
		if row < RowCount-1 {
			splits = append(splits, [2]uint8{b, b + 3}, [2]uint8{b + 1, b + 4}, [2]uint8{b + 2, b + 5})
		}
	}
	return splits
}

func buildStreets() [][3]uint8 {
	streets := make([][3]uint8, 0, RowCount)
	for row := 0; row < RowCount; row++ {
		b := uint8(row*3 + 1)
		streets = append(streets, [3]uint8{b, b + 1, b + 2})
	}
	return streets
}

// buildCorners enumerates the left and right square of every pair of
// neighboring rows.
func buildCorners() [][4]uint8 {
	corners := make([][4]uint8, 0, 22)
	for row := 0; row < RowCount-1; row++ {
		b := uint8(row*3 + 1)
		corners = append(corners,
			[4]uint8{b, b + 1, b + 3, b + 4},
			[4]uint8{b + 1, b + 2, b + 4, b + 5},
		)
	}
	return corners
}

func buildSixLines() [][6]uint8 {
	lines := make([][6]uint8, 0, RowCount-1)
	for row := 0; row < RowCount-1; row++ {
		b := uint8(row*3 + 1)
		lines = append(lines, [6]uint8{b, b + 1, b + 2, b + 3, b + 4, b + 5})
	}
	return lines
}

// Multiple returns the payout multiple for a winning bet of kind k.
func Multiple(k domain.BetKind) uint8 {
	switch k {
	case domain.BetStraight:
		return MultipleStraight
	case domain.BetSplit:
		return MultipleSplit
	case domain.BetStreet:
		return MultipleStreet
	case domain.BetCorner:
		return MultipleCorner
	case domain.BetSixLine:
		return MultipleSixLine
	case domain.BetColumn, domain.BetDozen:
		return MultipleGroup
	case domain.BetRed, domain.BetBlack, domain.BetOdd, domain.BetEven, domain.BetLow, domain.BetHigh:
		return MultipleEvenMoney
	}
	return 0
}

// IndexOf returns the wheel index holding number n, or -1.
func IndexOf(n uint8) int {
	for i, v := range Wheel {
		if v == n {
			return i
		}
	}
	return -1
}

// IsRed reports the color of number n as derived from its wheel index.
func IsRed(n uint8) bool {
	idx := IndexOf(n)
	return idx > 0 && idx%2 == 1
}

// neighbors returns the numbers covered by a grouped inside bet, or nil when
// the selector is outside the kind's table.
func neighbors(k domain.BetKind, sel uint8) []uint8 {
	i := int(sel)
	switch k {
	case domain.BetSplit:
		if i < len(SplitBets) {
			return SplitBets[i][:]
		}
	case domain.BetStreet:
		if i < len(StreetBets) {
			return StreetBets[i][:]
		}
	case domain.BetCorner:
		if i < len(CornerBets) {
			return CornerBets[i][:]
		}
	case domain.BetSixLine:
		if i < len(SixLineBets) {
			return SixLineBets[i][:]
		}
	}
	return nil
}

package roulette

// Payout multiples: the winnings paid per unit staked, excluding the stake
// itself which is returned on top.
const (
	MultipleStraight  uint8 = 35
	MultipleSplit     uint8 = 17
	MultipleStreet    uint8 = 11
	MultipleCorner    uint8 = 8
	MultipleSixLine   uint8 = 5
	MultipleGroup     uint8 = 2
	MultipleEvenMoney uint8 = 1
)

// Table layout
const (
	// WheelSize is the number of pockets on a single-zero wheel
	WheelSize = 37

	// MaxNumber is the highest number on the layout
	MaxNumber = 36

	// GroupCount is the number of columns and of dozens
	GroupCount = 3

	// RowCount is the number of three-number rows on the layout
	RowCount = 12

	// LowMax is the highest number covered by a low bet
	LowMax = 18
)

package roulette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

func TestEvaluate_LiteralPairs(t *testing.T) {
	tests := []struct {
		name string
		b    byte
		bet  domain.Bet
		want domain.BetOutcome
	}{
		{"straight 17 hit", 8, bet(domain.BetStraight, 17), domain.BetOutcome{Won: true, Number: 17, Red: false, Multiple: 35}},
		{"straight 17 hit after wrap", 230, bet(domain.BetStraight, 17), domain.BetOutcome{Won: true, Number: 17, Red: false, Multiple: 35}},
		{"straight miss", 8, bet(domain.BetStraight, 18), domain.BetOutcome{Number: 17}},
		{"zero loses red", 0, bet(domain.BetRed, 0), domain.BetOutcome{Number: 0}},
		{"zero loses black", 37, bet(domain.BetBlack, 0), domain.BetOutcome{Number: 0}},
		{"zero loses even", 74, bet(domain.BetEven, 0), domain.BetOutcome{Number: 0}},
		{"zero loses odd", 0, bet(domain.BetOdd, 0), domain.BetOutcome{Number: 0}},
		{"zero loses low", 0, bet(domain.BetLow, 0), domain.BetOutcome{Number: 0}},
		{"zero loses column", 0, bet(domain.BetColumn, 0), domain.BetOutcome{Number: 0}},
		{"zero loses dozen", 0, bet(domain.BetDozen, 0), domain.BetOutcome{Number: 0}},
		{"32 is red", 1, bet(domain.BetRed, 0), domain.BetOutcome{Won: true, Number: 32, Red: true, Multiple: 1}},
		{"32 is not black", 1, bet(domain.BetBlack, 0), domain.BetOutcome{Number: 32, Red: true}},
		{"32 is even", 1, bet(domain.BetEven, 0), domain.BetOutcome{Won: true, Number: 32, Red: true, Multiple: 1}},
		{"32 is high", 1, bet(domain.BetHigh, 0), domain.BetOutcome{Won: true, Number: 32, Red: true, Multiple: 1}},
		{"32 in column 1", 1, bet(domain.BetColumn, 1), domain.BetOutcome{Won: true, Number: 32, Red: true, Multiple: 2}},
		{"32 in dozen 2", 1, bet(domain.BetDozen, 2), domain.BetOutcome{Won: true, Number: 32, Red: true, Multiple: 2}},
		{"1 in split 0", 23, bet(domain.BetSplit, 0), domain.BetOutcome{Won: true, Number: 1, Red: true, Multiple: 17}},
		{"1 in split 2", 23, bet(domain.BetSplit, 2), domain.BetOutcome{Won: true, Number: 1, Red: true, Multiple: 17}},
		{"1 not in split 1", 23, bet(domain.BetSplit, 1), domain.BetOutcome{Number: 1, Red: true}},
		{"1 in street 0", 23, bet(domain.BetStreet, 0), domain.BetOutcome{Won: true, Number: 1, Red: true, Multiple: 11}},
		{"1 in corner 0", 23, bet(domain.BetCorner, 0), domain.BetOutcome{Won: true, Number: 1, Red: true, Multiple: 8}},
		{"1 in six line 0", 23, bet(domain.BetSixLine, 0), domain.BetOutcome{Won: true, Number: 1, Red: true, Multiple: 5}},
		{"1 is odd", 23, bet(domain.BetOdd, 0), domain.BetOutcome{Won: true, Number: 1, Red: true, Multiple: 1}},
		{"1 is low", 23, bet(domain.BetLow, 0), domain.BetOutcome{Won: true, Number: 1, Red: true, Multiple: 1}},
		{"26 is black", 36, bet(domain.BetBlack, 0), domain.BetOutcome{Won: true, Number: 26, Multiple: 1}},
		{"3 in column 2", 35, bet(domain.BetColumn, 2), domain.BetOutcome{Won: true, Number: 3, Red: true, Multiple: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.b, tt.bet))
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	for b := 0; b < 256; b++ {
		for _, k := range domain.AllBetKinds() {
			x := bet(k, 1)
			assert.Equal(t, Evaluate(byte(b), x), Evaluate(byte(b), x))
		}
	}
}

func TestEvaluate_LossHasZeroMultiple(t *testing.T) {
	for b := 0; b < 256; b++ {
		out := Evaluate(byte(b), bet(domain.BetStraight, 36))
		if !out.Won {
			assert.Zero(t, out.Multiple)
		}
	}
}

func TestEvaluateBatch_ConsumesOneBytePerSpin(t *testing.T) {
	batch := domain.SpinBatch{
		{bet(domain.BetStraight, 17), bet(domain.BetBlack, 0)},
		{bet(domain.BetRed, 0)},
	}
	stream := []byte{8, 1, 99}

	outcomes, err := EvaluateBatch(stream, batch)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	require.Len(t, outcomes[0], 2)
	require.Len(t, outcomes[1], 1)

	assert.Equal(t, domain.BetOutcome{Won: true, Number: 17, Multiple: 35}, outcomes[0][0])
	assert.Equal(t, domain.BetOutcome{Won: true, Number: 17, Multiple: 1}, outcomes[0][1])
	assert.Equal(t, domain.BetOutcome{Won: true, Number: 32, Red: true, Multiple: 1}, outcomes[1][0])
}

func TestEvaluateBatch_ShortStream(t *testing.T) {
	_, err := EvaluateBatch([]byte{1}, batchOf(2))
	assert.ErrorIs(t, err, domain.ErrInsufficientEntropy)
}

func TestPayout(t *testing.T) {
	batch := domain.SpinBatch{
		{
			{Kind: domain.BetStraight, Amount: domain.NewAmount(10), Selector: 17},
			{Kind: domain.BetRed, Amount: domain.NewAmount(5)},
			{Kind: domain.BetBlack, Amount: domain.NewAmount(7)},
		},
	}
	outcomes, err := EvaluateBatch([]byte{8}, batch)
	require.NoError(t, err)

	total, ok := Payout(batch, outcomes)
	require.True(t, ok)
	// straight 10*36 + black 7*2, red loses
	assert.Equal(t, domain.NewAmount(374), total)
}

func TestPayout_Overflow(t *testing.T) {
	batch := domain.SpinBatch{{{Kind: domain.BetStraight, Amount: domain.MaxAmount, Selector: 17}}}
	outcomes, err := EvaluateBatch([]byte{8}, batch)
	require.NoError(t, err)

	_, ok := Payout(batch, outcomes)
	assert.False(t, ok)
}

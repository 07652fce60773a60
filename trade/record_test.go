package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Outcome
		wantErr bool
	}{
		{"win", OutcomeWin, false},
		{"WIN", OutcomeWin, false},
		{" loss ", OutcomeLoss, false},
		{"L", OutcomeLoss, false},
		{"break_even", OutcomeBreakeven, false},
		{"BE", OutcomeBreakeven, false},
		{"open", OutcomeOpen, false},
		{"scratch", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutcome(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutcomeClosed(t *testing.T) {
	t.Parallel()

	assert.True(t, OutcomeWin.Closed())
	assert.True(t, OutcomeLoss.Closed())
	assert.False(t, OutcomeBreakeven.Closed())
	assert.False(t, OutcomeOpen.Closed())
	assert.False(t, Outcome("").Valid())
}

func TestRecordValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Record{TradeID: "T1", Outcome: OutcomeWin}.Validate())

	err := Record{Outcome: OutcomeWin}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trade_id is required")

	err = Record{TradeID: "T2", Outcome: "maybe"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid outcome")
}

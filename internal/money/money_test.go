package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsConversion(t *testing.T) {
	tests := []struct {
		amount string
		cents  int64
	}{
		{"0", 0},
		{"12.5", 1250},
		{"12.345", 1235},
		{"-0.005", -1},
		{"1000000.99", 100000099},
		{"92233720368547758.07", 9223372036854775807},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			cents, err := ToCents(decimal.RequireFromString(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.cents, cents)
		})
	}

	assert.True(t, FromCents(1250).Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, "-0.01", Format(FromCents(-1)))
}

func TestToCents_OutOfRange(t *testing.T) {
	for _, amount := range []string{"1e20", "-1e20", "92233720368547758.08"} {
		t.Run(amount, func(t *testing.T) {
			_, err := ToCents(decimal.RequireFromString(amount))

			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr error
	}{
		{"12.34", nil},
		{"12.30000", nil},
		{"-7", nil},
		{"0.004", ErrTooPrecise},
		{"12.345", ErrTooPrecise},
		{"1e20", ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := Validate(decimal.RequireFromString(tt.amount))

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParse(t *testing.T) {
	amount, err := Parse("19.99")
	require.NoError(t, err)
	assert.Equal(t, "19.99", Format(amount))

	_, err = Parse("abc")
	assert.Error(t, err)
}

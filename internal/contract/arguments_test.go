package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeArgument(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "ticker", input: "str:STCOIN", expected: "0x5354434f494e"},
		{name: "nft ticker", input: "str:HEDGE", expected: "0x4845444745"},
		{name: "empty string", input: "str:", expected: "0x"},
		{name: "hex passthrough", input: "0x0a0b", expected: "0x0a0b"},
		{name: "odd hex", input: "0xabc", wantErr: true},
		{name: "bad hex", input: "0xzz", wantErr: true},
		{name: "decimal", input: "1000", expected: "1000"},
		{name: "leading zeros", input: "007", expected: "7"},
		{name: "too large", input: strings.Repeat("9", 80), wantErr: true},
		{name: "address", input: "erd1qqqqqqqqqqqqqpgq", expected: "erd1qqqqqqqqqqqqqpgq"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeArgument(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncodeArguments(t *testing.T) {
	got, err := EncodeArguments([]string{"str:HEDGE", "str:HEDGEPOS"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0x4845444745", "0x4845444745504f53"}, got)

	_, err = EncodeArguments([]string{"str:OK", "0x1"})
	assert.Error(t, err)

	got, err = EncodeArguments(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

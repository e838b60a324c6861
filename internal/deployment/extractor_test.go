package deployment

import (
	"os"
	"path/filepath"
	"testing"

	fsjson "github.com/chetahvarsha/stablecoin-sc/internal/infra/filesystem/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deployOutput = `{
  "emitted_tx": {
    "tx": {
      "nonce": 42,
      "value": "0",
      "gasLimit": 200000000,
      "chainID": "T"
    },
    "hash": "5f1d0e7c9b1a",
    "data": "0061736d",
    "address": "erd1qqqqqqqqqqqqqpgqd77fnev2sthnczp2lnfx0y5jdycynjfhzzgq6p3rax"
  },
  "logs": ["deployed", "ok"]
}`

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "data['emitted_tx']['address']", expected: "emitted_tx.address"},
		{input: `data["emitted_tx"]["hash"]`, expected: "emitted_tx.hash"},
		{input: "data['logs'][1]", expected: "logs.[1]"},
		{input: " emitted_tx.address ", expected: "emitted_tx.address"},
		{input: "", wantErr: true},
		{input: "data[", wantErr: true},
		{input: "data['a']junk", wantErr: true},
		{input: "data['a'] ['b']", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseExpression(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFind(t *testing.T) {
	data := []byte(deployOutput)

	t.Run("string field", func(t *testing.T) {
		v, err := Find(data, AddressExpression)
		require.NoError(t, err)
		assert.Equal(t, "erd1qqqqqqqqqqqqqpgqd77fnev2sthnczp2lnfx0y5jdycynjfhzzgq6p3rax", v)
	})

	t.Run("number field", func(t *testing.T) {
		v, err := Find(data, "emitted_tx.tx.gasLimit")
		require.NoError(t, err)
		assert.Equal(t, "200000000", v)
	})

	t.Run("large integers keep every digit", func(t *testing.T) {
		raw := []byte(`{"tx": {"nonce": 18446744073709551615, "value": 50000000000000000001, "fee": 0.5}}`)

		v, err := Find(raw, "tx.nonce")
		require.NoError(t, err)
		assert.Equal(t, "18446744073709551615", v)

		v, err = Find(raw, "data['tx']['value']")
		require.NoError(t, err)
		assert.Equal(t, "50000000000000000001", v)

		v, err = Find(raw, "tx.fee")
		require.NoError(t, err)
		assert.Equal(t, "0.5", v)

		v, err = Find(raw, "tx")
		require.NoError(t, err)
		assert.Contains(t, v, `"value":50000000000000000001`)
	})

	t.Run("array element", func(t *testing.T) {
		v, err := Find(data, "data['logs'][1]")
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
	})

	t.Run("object rendered as json", func(t *testing.T) {
		v, err := Find(data, "emitted_tx.tx")
		require.NoError(t, err)
		assert.JSONEq(t, `{"nonce":42,"value":"0","gasLimit":200000000,"chainID":"T"}`, v)
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := Find(data, "data['emitted_tx']['receipt']")
		assert.ErrorIs(t, err, ErrFieldNotFound)
	})
}

func TestExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	extractor := NewExtractor(fsjson.NewReader())

	t.Run("address and hash", func(t *testing.T) {
		path := filepath.Join(dir, "deploy-testnet.interaction.json")
		require.NoError(t, os.WriteFile(path, []byte(deployOutput), 0644))

		res, err := extractor.Extract(path)
		require.NoError(t, err)
		assert.Equal(t, "5f1d0e7c9b1a", res.TransactionHash)
		assert.Contains(t, res.Address, "erd1")
	})

	t.Run("outfile without emitted transaction", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"logs": []}`), 0644))

		_, err := extractor.Extract(path)
		assert.ErrorIs(t, err, ErrFieldNotFound)
	})

	t.Run("missing outfile", func(t *testing.T) {
		_, err := extractor.Extract(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}

package output

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	fsjson "github.com/chetahvarsha/stablecoin-sc/internal/infra/filesystem/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir, fsjson.NewWriter())

	model := Model{
		Contract:        "stablecoin-v2",
		Environment:     "testnet",
		Proxy:           "https://testnet-gateway.elrond.com",
		ChainID:         "1",
		Address:         "erd1qqqqqqqqqqqqqpgq",
		TransactionHash: "0e12",
	}

	require.NoError(t, g.Generate(model))

	path := filepath.Join(dir, "stablecoin-v2", "testnet.yaml")
	assert.Equal(t, path, g.Path("stablecoin-v2", "testnet"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "chain-id: '1'")
	assert.Contains(t, string(raw), "deploy-transaction: '0e12'")

	got, err := g.Read("stablecoin-v2", "testnet")
	require.NoError(t, err)
	assert.Equal(t, model, got)
}

func TestGenerator_ReadMissing(t *testing.T) {
	_, err := NewGenerator(t.TempDir(), fsjson.NewWriter()).Read("lock-rewards", "devnet")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

package datastore

import (
	"context"
	"errors"
	"testing"

	"github.com/chetahvarsha/stablecoin-sc/internal/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls [][]string
	out   string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	return []byte(f.out), f.err
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "address-testnet", AddressKey("testnet"))
	assert.Equal(t, "deployTransaction-devnet", DeployTransactionKey("devnet"))
}

func TestStore_Load(t *testing.T) {
	t.Run("trims output", func(t *testing.T) {
		runner := &fakeRunner{out: "erd1qqqqqqqqqqqqqpgq\n"}
		value, err := New(runner, "").Load(context.Background(), "address-testnet")

		require.NoError(t, err)
		assert.Equal(t, "erd1qqqqqqqqqqqqqpgq", value)
		assert.Equal(t, [][]string{{"data", "load", "--key=address-testnet"}}, runner.calls)
	})

	t.Run("empty value is not found", func(t *testing.T) {
		_, err := New(&fakeRunner{out: "\n"}, "").Load(context.Background(), "address-testnet")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("tool failure is wrapped", func(t *testing.T) {
		exitErr := &tool.ExitError{Code: 1}
		_, err := New(&fakeRunner{err: exitErr}, "").Load(context.Background(), "address-testnet")

		var target *tool.ExitError
		require.True(t, errors.As(err, &target))
		assert.NotErrorIs(t, err, ErrKeyNotFound)
	})
}

func TestStore_Save(t *testing.T) {
	runner := &fakeRunner{}
	err := New(runner, "lock-rewards").Save(context.Background(), "deployTransaction-testnet", "ab12")

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"data", "store", "--key=deployTransaction-testnet", "--value=ab12", "--partition=lock-rewards"}}, runner.calls)
}

func TestStore_Parse(t *testing.T) {
	runner := &fakeRunner{out: "erd1abc\n"}
	value, err := New(runner, "").Parse(context.Background(), "deploy.json", "data['emitted_tx']['address']")

	require.NoError(t, err)
	assert.Equal(t, "erd1abc", value)
	assert.Equal(t, "parse", runner.calls[0][1])
}

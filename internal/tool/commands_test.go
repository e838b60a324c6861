package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testTx = Transaction{
	PEM:      "/keys/alice.pem",
	Proxy:    "https://testnet-gateway.elrond.com",
	ChainID:  "T",
	GasLimit: 200000000,
}

func TestContractDeploy(t *testing.T) {
	t.Run("bytecode with outfile and arguments", func(t *testing.T) {
		tx := testTx
		tx.Outfile = "deploy-testnet.interaction.json"
		tx.Verbose = true

		args := ContractDeploy(Artifact{Project: "./sc", Bytecode: "./sc/output/sc.wasm"}, []string{"0x5354", "1000"}, tx)

		assert.Equal(t, []string{
			"--verbose", "contract", "deploy",
			"--bytecode=./sc/output/sc.wasm",
			"--recall-nonce", "--pem=/keys/alice.pem", "--gas-limit=200000000",
			"--outfile=deploy-testnet.interaction.json",
			"--send", "--proxy=https://testnet-gateway.elrond.com", "--chain=T",
			"--arguments", "0x5354", "1000",
		}, args)
	})

	t.Run("project without arguments", func(t *testing.T) {
		args := ContractDeploy(Artifact{Project: "./sc"}, nil, testTx)

		assert.Equal(t, "contract", args[0])
		assert.Contains(t, args, "--project=./sc")
		assert.NotContains(t, args, "--arguments")
	})
}

func TestContractUpgrade(t *testing.T) {
	args := ContractUpgrade("erd1qqqq", Artifact{Bytecode: "sc.wasm"}, nil, testTx)

	assert.Equal(t, []string{"contract", "upgrade", "erd1qqqq", "--bytecode=sc.wasm"}, args[:4])
	assert.Contains(t, args, "--send")
}

func TestContractCall(t *testing.T) {
	tx := testTx
	tx.Value = "50000000000000000"
	tx.GasLimit = 100000000

	args := ContractCall("erd1qqqq", "issueStablecoinToken", []string{"0x5354434f494e"}, tx)

	assert.Equal(t, []string{
		"contract", "call", "erd1qqqq", "--function=issueStablecoinToken",
		"--recall-nonce", "--pem=/keys/alice.pem", "--gas-limit=100000000",
		"--value=50000000000000000",
		"--send", "--proxy=https://testnet-gateway.elrond.com", "--chain=T",
		"--arguments", "0x5354434f494e",
	}, args)
}

func TestContractCall_ZeroValueOmitted(t *testing.T) {
	tx := testTx
	tx.Value = "0"

	args := ContractCall("erd1qqqq", "claimRewards", nil, tx)

	for _, arg := range args {
		assert.NotContains(t, arg, "--value")
	}
}

func TestContractQuery(t *testing.T) {
	assert.Equal(t,
		[]string{"contract", "query", "erd1qqqq", "--function=getStablecoinTokenId", "--proxy=http://localhost:7950"},
		ContractQuery("erd1qqqq", "getStablecoinTokenId", nil, "http://localhost:7950"))
}

func TestDataCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "load global",
			args:     DataLoad("address-testnet", ""),
			expected: []string{"data", "load", "--key=address-testnet"},
		},
		{
			name:     "load partitioned",
			args:     DataLoad("address-testnet", "lock-rewards"),
			expected: []string{"data", "load", "--key=address-testnet", "--partition=lock-rewards"},
		},
		{
			name:     "store",
			args:     DataStore("deployTransaction-testnet", "abc", ""),
			expected: []string{"data", "store", "--key=deployTransaction-testnet", "--value=abc"},
		},
		{
			name:     "parse",
			args:     DataParse("out.json", "data['emitted_tx']['address']"),
			expected: []string{"data", "parse", "--file=out.json", "--expression=data['emitted_tx']['address']"},
		},
		{
			name:     "build",
			args:     ContractBuild("./sc"),
			expected: []string{"contract", "build", "./sc"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.args)
		})
	}
}

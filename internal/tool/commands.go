package tool

import (
	"strconv"
)

// Transaction carries the flags shared by every state-changing contract command.
type Transaction struct {
	PEM      string
	Proxy    string
	ChainID  string
	GasLimit uint64
	Value    string
	Outfile  string
	Verbose  bool
}

// Artifact points at the contract code: a prebuilt bytecode file or a project directory.
type Artifact struct {
	Project  string
	Bytecode string
}

func ContractBuild(project string) []string {
	args := []string{"contract", "build"}
	if project != "" {
		args = append(args, project)
	}
	return args
}

func ContractDeploy(artifact Artifact, arguments []string, tx Transaction) []string {
	args := verbose(tx.Verbose, "contract", "deploy")
	args = append(args, artifact.flags()...)
	args = append(args, tx.flags()...)
	return withArguments(args, arguments)
}

func ContractUpgrade(address string, artifact Artifact, arguments []string, tx Transaction) []string {
	args := verbose(tx.Verbose, "contract", "upgrade", address)
	args = append(args, artifact.flags()...)
	args = append(args, tx.flags()...)
	return withArguments(args, arguments)
}

func ContractCall(address, function string, arguments []string, tx Transaction) []string {
	args := verbose(tx.Verbose, "contract", "call", address, "--function="+function)
	args = append(args, tx.flags()...)
	return withArguments(args, arguments)
}

func ContractQuery(address, function string, arguments []string, proxy string) []string {
	args := []string{"contract", "query", address, "--function=" + function, "--proxy=" + proxy}
	return withArguments(args, arguments)
}

// DataLoad reads key from the tool's data store. An empty partition uses the global one.
func DataLoad(key, partition string) []string {
	args := []string{"data", "load", "--key=" + key}
	if partition != "" {
		args = append(args, "--partition="+partition)
	}
	return args
}

func DataStore(key, value, partition string) []string {
	args := []string{"data", "store", "--key=" + key, "--value=" + value}
	if partition != "" {
		args = append(args, "--partition="+partition)
	}
	return args
}

func DataParse(file, expression string) []string {
	return []string{"data", "parse", "--file=" + file, "--expression=" + expression}
}

func (a Artifact) flags() []string {
	if a.Bytecode != "" {
		return []string{"--bytecode=" + a.Bytecode}
	}
	return []string{"--project=" + a.Project}
}

func (t Transaction) flags() []string {
	args := []string{"--recall-nonce", "--pem=" + t.PEM, "--gas-limit=" + strconv.FormatUint(t.GasLimit, 10)}
	if t.Value != "" && t.Value != "0" {
		args = append(args, "--value="+t.Value)
	}
	if t.Outfile != "" {
		args = append(args, "--outfile="+t.Outfile)
	}
	return append(args, "--send", "--proxy="+t.Proxy, "--chain="+t.ChainID)
}

func verbose(enabled bool, args ...string) []string {
	if enabled {
		return append([]string{"--verbose"}, args...)
	}
	return args
}

// withArguments appends positional contract arguments last; the tool's
// --arguments flag consumes every value that follows it.
func withArguments(args, arguments []string) []string {
	if len(arguments) == 0 {
		return args
	}
	args = append(args, "--arguments")
	return append(args, arguments...)
}

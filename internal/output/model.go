package output

import (
	"gopkg.in/yaml.v3"
)

type (
	Model struct {
		Contract        string             `yaml:"contract"`
		Environment     string             `yaml:"environment"`
		Proxy           string             `yaml:"proxy"`
		ChainID         SingleQuotedString `yaml:"chain-id"`
		Address         string             `yaml:"address"`
		TransactionHash SingleQuotedString `yaml:"deploy-transaction"`
	}

	SingleQuotedString string
)

// MarshalYAML keeps chain ids like T or 1 and hex hashes from being retyped by YAML readers.
func (s SingleQuotedString) MarshalYAML() (any, error) {
	node := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.SingleQuotedStyle,
		Value: string(s),
	}
	return node, nil
}

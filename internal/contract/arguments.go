package contract

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

const stringArgumentPrefix = "str:"

// EncodeArgument converts a configured contract argument into the form the tool expects.
//
//	str:STCOIN  -> 0x5354434f494e
//	0x0a        -> 0x0a (validated)
//	1000        -> 1000 (validated as a 256-bit unsigned integer)
//
// Anything else, such as a bech32 address, is passed through untouched.
func EncodeArgument(arg string) (string, error) {
	switch {
	case strings.HasPrefix(arg, stringArgumentPrefix):
		return hexutil.Encode([]byte(strings.TrimPrefix(arg, stringArgumentPrefix))), nil
	case strings.HasPrefix(arg, "0x"):
		if _, err := hexutil.Decode(arg); err != nil {
			return "", fmt.Errorf("invalid hex argument %q: %w", arg, err)
		}
		return arg, nil
	case isDecimal(arg):
		v, ok := math.ParseBig256(arg)
		if !ok {
			return "", fmt.Errorf("numeric argument %q does not fit in 256 bits", arg)
		}
		return v.String(), nil
	default:
		return arg, nil
	}
}

func EncodeArguments(args []string) ([]string, error) {
	encoded := make([]string, 0, len(args))
	for _, arg := range args {
		e, err := EncodeArgument(arg)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, e)
	}
	return encoded, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

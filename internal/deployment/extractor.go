package deployment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/chetahvarsha/stablecoin-sc/internal/infra/filesystem"
	"github.com/thedevsaddam/gojsonq"
)

const (
	AddressExpression         = "data['emitted_tx']['address']"
	TransactionHashExpression = "data['emitted_tx']['hash']"
)

var (
	ErrFieldNotFound = errors.New("field not found in deployment output")

	subscriptPattern = regexp.MustCompile(`\[\s*(?:'([^']*)'|"([^"]*)"|(\d+))\s*\]`)
)

type (
	// Result holds what the deploy outfile says about the new contract.
	Result struct {
		Address         string
		TransactionHash string
	}

	Extractor struct {
		reader filesystem.Reader
	}

	// numberDecoder keeps JSON numbers as json.Number so large integers are not rounded.
	numberDecoder struct{}
)

func (numberDecoder) Decode(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func NewExtractor(reader filesystem.Reader) *Extractor {
	return &Extractor{reader: reader}
}

// Extract reads the contract address and deploy transaction hash from the outfile.
func (e *Extractor) Extract(outfile string) (Result, error) {
	data, err := e.reader.ReadRaw(outfile)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read deployment output: %w", err)
	}

	address, err := Find(data, AddressExpression)
	if err != nil {
		return Result{}, err
	}
	hash, err := Find(data, TransactionHashExpression)
	if err != nil {
		return Result{}, err
	}

	return Result{Address: address, TransactionHash: hash}, nil
}

// Field evaluates a single expression against the file at path.
func (e *Extractor) Field(path, expression string) (string, error) {
	data, err := e.reader.ReadRaw(path)
	if err != nil {
		return "", err
	}
	return Find(data, expression)
}

// Find evaluates expression against a JSON document and renders the value as text.
func Find(data []byte, expression string) (string, error) {
	path, err := ParseExpression(expression)
	if err != nil {
		return "", err
	}

	jq := gojsonq.New(gojsonq.SetDecoder(numberDecoder{})).FromString(string(data))
	if jq.Error() != nil {
		return "", fmt.Errorf("failed to decode JSON: %w", jq.Error())
	}

	// gojsonq reports unresolvable nodes as errors; null values come back as nil
	res := jq.Find(path)
	if err := jq.Error(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFieldNotFound, expression, err)
	}
	if res == nil {
		return "", fmt.Errorf("%w: %s", ErrFieldNotFound, expression)
	}

	switch v := res.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to encode value of %q: %w", expression, err)
		}
		return string(encoded), nil
	}
}

// ParseExpression turns data['a']['b'][0] into the dotted path a.b.[0].
// Dotted paths are returned unchanged.
func ParseExpression(expression string) (string, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return "", errors.New("empty expression")
	}
	if !strings.HasPrefix(expression, "data[") {
		return expression, nil
	}

	rest := strings.TrimPrefix(expression, "data")
	matches := subscriptPattern.FindAllStringSubmatchIndex(rest, -1)

	var (
		parts []string
		pos   int
	)
	for _, m := range matches {
		if m[0] != pos {
			return "", fmt.Errorf("malformed expression %q", expression)
		}
		pos = m[1]

		switch {
		case m[2] >= 0:
			parts = append(parts, rest[m[2]:m[3]])
		case m[4] >= 0:
			parts = append(parts, rest[m[4]:m[5]])
		default:
			parts = append(parts, "["+rest[m[6]:m[7]]+"]")
		}
	}
	if pos != len(rest) || len(parts) == 0 {
		return "", fmt.Errorf("malformed expression %q", expression)
	}

	return strings.Join(parts, "."), nil
}

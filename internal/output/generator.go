package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chetahvarsha/stablecoin-sc/internal/infra/filesystem"
	"gopkg.in/yaml.v3"
)

type Generator struct {
	dir    string
	writer filesystem.Writer
}

// NewGenerator writes summaries below dir, one file per contract and environment.
func NewGenerator(dir string, writer filesystem.Writer) *Generator {
	return &Generator{dir: dir, writer: writer}
}

func (g *Generator) Path(contract, env string) string {
	return filepath.Join(g.dir, contract, env+".yaml")
}

func (g *Generator) Generate(model Model) error {
	data, err := yaml.Marshal(&model)
	if err != nil {
		return fmt.Errorf("could not marshal output model. Err: '%w'", err)
	}

	if err := g.writer.WriteBytes(g.Path(model.Contract, model.Environment), data); err != nil {
		return fmt.Errorf("could not write output file. Err: '%w'", err)
	}

	return nil
}

// Read loads a summary written by Generate. A missing file yields os.ErrNotExist.
func (g *Generator) Read(contract, env string) (Model, error) {
	data, err := os.ReadFile(g.Path(contract, env))
	if err != nil {
		return Model{}, err
	}

	var model Model
	if err := yaml.Unmarshal(data, &model); err != nil {
		return Model{}, fmt.Errorf("could not unmarshal output file. Err: '%w'", err)
	}

	return model, nil
}

package classify

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/hirelens/incentive-cli/internal/model"
)

// LoadTaxonomy returns the taxonomy to classify against: the built-in one,
// or a YAML override when path is set. An override fully replaces the
// default and must bring its own absorber category.
func LoadTaxonomy(path string) (model.Taxonomy, error) {
	if path == "" {
		return model.DefaultTaxonomy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "classify: read taxonomy %s", path)
	}

	var taxonomy model.Taxonomy
	if err := yaml.Unmarshal(data, &taxonomy); err != nil {
		return nil, eris.Wrapf(err, "classify: parse taxonomy %s", path)
	}
	if len(taxonomy) == 0 {
		return nil, eris.Errorf("classify: taxonomy %s is empty", path)
	}
	for _, cat := range taxonomy {
		if cat.Name == "" {
			return nil, eris.Errorf("classify: taxonomy %s has a category without a name", path)
		}
		if len(cat.Examples) == 0 {
			return nil, eris.Errorf("classify: category %s has no examples", cat.Name)
		}
	}
	return taxonomy, nil
}

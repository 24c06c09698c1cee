package assets

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"
)

//go:embed data/pois.yaml
var defaultDataset []byte

var idPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Record is one static POI definition. Records are fixed configuration; the
// order of the list is the unlock order.
type Record struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Pos         [2]int `yaml:"pos"`
	Description string `yaml:"description"`
	Image       string `yaml:"image,omitempty"`
}

// Validate checks a single record.
func (r *Record) Validate() error {
	el := errors.NewErrorList()

	if r.ID == "" {
		el.Add(fmt.Errorf("id must be set"))
	} else if !idPattern.MatchString(r.ID) {
		el.Add(fmt.Errorf("id %q must be lowercase alphanumeric or underscore", r.ID))
	}
	if r.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if r.Pos[0] < 0 || r.Pos[1] < 0 {
		el.Add(fmt.Errorf("pos %v must not be negative", r.Pos))
	}

	return el.Err()
}

type datasetFile struct {
	POIs []Record `yaml:"pois"`
}

// ParseDataset decodes and validates a YAML dataset.
func ParseDataset(data []byte) ([]Record, error) {
	var f datasetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	if len(f.POIs) == 0 {
		return nil, ErrEmptyDataset
	}

	el := errors.NewErrorList()
	seen := make(map[string]int, len(f.POIs))
	for i := range f.POIs {
		r := &f.POIs[i]
		if err := r.Validate(); err != nil {
			el.Add(fmt.Errorf("poi %d: %w", i, err))
		}
		if j, dup := seen[r.ID]; dup && r.ID != "" {
			el.Add(fmt.Errorf("poi %d: id %q already used by poi %d", i, r.ID, j))
		}
		seen[r.ID] = i
	}
	if err := el.Err(); err != nil {
		return nil, err
	}
	return f.POIs, nil
}

// LoadDataset reads a dataset file, or the embedded default when path is empty.
func LoadDataset(path string) ([]Record, error) {
	if path == "" {
		return ParseDataset(defaultDataset)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return ParseDataset(data)
}

// CheckBounds reports records positioned outside a w×h map.
func CheckBounds(records []Record, w, h int) error {
	el := errors.NewErrorList()
	for _, r := range records {
		if r.Pos[0] >= w || r.Pos[1] >= h {
			el.Add(fmt.Errorf("poi %s at %v is outside the %dx%d map", r.ID, r.Pos, w, h))
		}
	}
	return el.Err()
}

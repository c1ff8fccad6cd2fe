package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/careflow/margin-simulator/internal/catalog"
	"github.com/careflow/margin-simulator/internal/domain"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogSource []byte

// CatalogFile is the on-disk shape of a procedure catalog.
type CatalogFile struct {
	Procedures []domain.Procedure `yaml:"procedures" json:"procedures" toml:"procedures"`
}

// CatalogParser handles parsing of procedure catalog files
type CatalogParser struct{}

// NewCatalogParser creates a new catalog parser
func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

// LoadFromFile loads a catalog from a YAML, JSON or TOML file, chosen by extension.
func (cp *CatalogParser) LoadFromFile(filename string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return cp.Parse(data, filepath.Ext(filename))
}

// LoadDefault returns the catalog embedded at build time.
func (cp *CatalogParser) LoadDefault() (*catalog.Catalog, error) {
	return cp.Parse(defaultCatalogSource, ".yaml")
}

// Load reads filename, or the embedded catalog when filename is empty.
func (cp *CatalogParser) Load(filename string) (*catalog.Catalog, error) {
	if filename == "" {
		return cp.LoadDefault()
	}
	return cp.LoadFromFile(filename)
}

// Parse decodes catalog data in the format named by ext and validates it.
func (cp *CatalogParser) Parse(data []byte, ext string) (*catalog.Catalog, error) {
	procedures, err := decodeProcedures(data, strings.ToLower(ext))
	if err != nil {
		return nil, err
	}
	if err := cp.ValidateCatalog(procedures); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}
	return catalog.New(procedures), nil
}

func decodeProcedures(data []byte, ext string) ([]domain.Procedure, error) {
	var file CatalogFile
	switch ext {
	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		// a bare list of procedures is accepted as well as a procedures: document
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			if err := node.Content[0].Decode(&file.Procedures); err != nil {
				return nil, fmt.Errorf("failed to parse YAML: %w", err)
			}
			return file.Procedures, nil
		}
		if err := node.Decode(&file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &file.Procedures); err != nil {
				return nil, fmt.Errorf("failed to parse JSON: %w", err)
			}
			return file.Procedures, nil
		}
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog file format: %q", ext)
	}
	return file.Procedures, nil
}

// ValidateCatalog validates every catalog entry and ID uniqueness.
func (cp *CatalogParser) ValidateCatalog(procedures []domain.Procedure) error {
	if len(procedures) == 0 {
		return fmt.Errorf("no procedures provided")
	}

	seen := make(map[int]string, len(procedures))
	for i, p := range procedures {
		if p.ID <= 0 {
			return fmt.Errorf("procedure %d (%q): id must be positive", i, p.Name)
		}
		if other, dup := seen[p.ID]; dup {
			return fmt.Errorf("procedure %d (%q): id %d already used by %q", i, p.Name, p.ID, other)
		}
		seen[p.ID] = p.Name

		if err := cp.validateProcedure(&p); err != nil {
			return fmt.Errorf("procedure %d (%q) validation failed: %w", p.ID, p.Name, err)
		}
	}
	return nil
}

// validateProcedure validates a single procedure
func (cp *CatalogParser) validateProcedure(p *domain.Procedure) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !positive(p.SuggestedPrice) {
		return fmt.Errorf("suggested price must be positive")
	}
	if p.Sessions <= 0 {
		return fmt.Errorf("number of sessions must be positive")
	}
	if !positive(p.SessionMinutes) {
		return fmt.Errorf("session time must be positive")
	}
	if !nonNegative(p.ProfessionalCostPerSession) {
		return fmt.Errorf("professional cost per session cannot be negative")
	}
	for j, c := range p.Consumables {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("consumable %d: name is required", j)
		}
		if !nonNegative(c.Value) {
			return fmt.Errorf("consumable %q: value cannot be negative", c.Name)
		}
	}
	return nil
}

// SaveCatalog writes procedures to filename as YAML.
func SaveCatalog(procedures []domain.Procedure, filename string) error {
	b, err := yaml.Marshal(CatalogFile{Procedures: procedures})
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

package bots

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadCatalog reads a bot catalog from a YAML file and validates it.
func LoadCatalog(path string) ([]Bot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bot catalog: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) ([]Bot, error) {
	var doc struct {
		Bots []Bot `yaml:"bots"`
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse bot catalog: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse bot catalog: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse bot catalog: %w", err)
	}
	if err := validateCatalog(doc.Bots); err != nil {
		return nil, err
	}
	return doc.Bots, nil
}

func validateCatalog(catalog []Bot) error {
	if len(catalog) == 0 {
		return fmt.Errorf("bot catalog: must include at least one bot")
	}
	seen := map[string]struct{}{}
	for i, bot := range catalog {
		if bot.ID == "" {
			return fmt.Errorf("bot catalog: bots[%d].id is required", i)
		}
		if _, exists := seen[bot.ID]; exists {
			return fmt.Errorf("bot catalog: duplicate bot id %q", bot.ID)
		}
		seen[bot.ID] = struct{}{}
		if bot.Name == "" {
			return fmt.Errorf("bot catalog: bots[%d].name is required", i)
		}
		if !bot.Kind.Valid() {
			return fmt.Errorf("bot catalog: bots[%d].type must be chat or voice, got %q", i, bot.Kind)
		}
	}
	return nil
}

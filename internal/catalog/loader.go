package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Holmiboii/ummorpg/internal/logger"
	"github.com/Holmiboii/ummorpg/internal/validation"
)

//go:embed schema/catalog.schema.json
var schemaFS embed.FS

// Loader reads catalog files from disk.
type Loader interface {
	Load(ctx context.Context, path string) (*Catalog, error)
	Parse(data []byte) (*Catalog, error)
}

type fileLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a Loader validating against the embedded schema.
func NewLoader() Loader {
	return &fileLoader{
		schemaValidator: validation.NewSchemaValidator(schemaFS),
	}
}

// Load reads, schema-validates and builds the catalog at path.
func (l *fileLoader) Load(ctx context.Context, path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadFileFailed, err)
	}

	c, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.FromContext(ctx).Info(LogMsgCatalogLoaded,
		"path", path,
		"version", c.Version(),
		"items", len(c.items),
		"skills", len(c.skills),
		"quests", len(c.quests),
		"recipes", len(c.recipes))
	return c, nil
}

// Parse validates raw catalog JSON and builds the catalog.
func (l *fileLoader) Parse(data []byte) (*Catalog, error) {
	if err := l.schemaValidator.ValidateBytes(data, SchemaName); err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf(ErrMsgParseFileFailed, err)
	}
	return New(f)
}

package catalog

import "errors"

// Sentinel errors for catalog loading
var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrDuplicateName  = errors.New("duplicate template name")
)

// SchemaName is the embedded schema every catalog file must satisfy.
const SchemaName = "schema/catalog.schema.json"

// Error messages
const (
	ErrMsgReadFileFailed  = "failed to read catalog file: %w"
	ErrMsgParseFileFailed = "failed to parse catalog: %w"
	ErrMsgNoLevels        = "no levels defined"
	ErrFmtEmptyName       = "%w: %s at index %d has empty name"
	ErrFmtBadMaxStack     = "%w: item '%s' needs max_stack >= 1"
	ErrFmtSkillNoLevels   = "%w: skill '%s' has no levels"
	ErrFmtUnknownRef      = "%w: %s '%s' references unknown '%s'"
	ErrFmtRecipeEmpty     = "%w: recipe %d has no ingredients"
)

// Log messages
const (
	LogMsgCatalogLoaded = "Catalog loaded"
)

package offers

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/mathieu/applyassist/internal/types"
)

//go:embed offer.schema.json
var offerSchema string

// CatalogError represents an error loading the offer catalog
type CatalogError struct {
	Path    string
	Message string
	Cause   error
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("offer catalog error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("offer catalog error for %s: %s", e.Path, e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// LoadCatalog reads a JSON file containing an array of raw offer records.
// Each record is validated against the offer schema; records missing a title
// or description are skipped with a warning, never a failure. An unreadable
// or malformed file is an error, an empty catalog is not.
func LoadCatalog(path string, logger *zap.Logger) ([]types.RawOffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CatalogError{Path: path, Message: "failed to read catalog file", Cause: err}
	}

	var records []types.RawOffer
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &CatalogError{Path: path, Message: "failed to parse catalog JSON", Cause: err}
	}

	schemaLoader := gojsonschema.NewStringLoader(offerSchema)

	valid := make([]types.RawOffer, 0, len(records))
	for i, record := range records {
		result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(record))
		if err != nil {
			return nil, &CatalogError{Path: path, Message: "schema validation failed to run", Cause: err}
		}
		if !result.Valid() {
			if logger != nil {
				logger.Warn("skipping invalid offer record",
					zap.Int("index", i),
					zap.String("id", Resolve(record, FieldID)),
					zap.String("reason", firstValidationError(result)),
				)
			}
			continue
		}
		valid = append(valid, record)
	}

	return valid, nil
}

func firstValidationError(result *gojsonschema.Result) string {
	errs := result.Errors()
	if len(errs) == 0 {
		return ""
	}
	return errs[0].Description()
}

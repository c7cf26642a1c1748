// Package source implements the product sources the catalog reads from.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/behzade/storefront/internal/domain"
)

// productRecord is the wire shape of a catalog entry.
type productRecord struct {
	ID           int64  `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	PriceInCents int64  `json:"price_in_cents" yaml:"price_in_cents"`
	ImageURL     string `json:"image_url" yaml:"image_url"`
}

func (r productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:           r.ID,
		Name:         r.Name,
		PriceInCents: r.PriceInCents,
		ImageURL:     r.ImageURL,
	}
}

const catalogSchemaURL = "https://storefront.schemas.local/catalog.schema.json"

const catalogSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "price_in_cents"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "name": {"type": "string"},
      "price_in_cents": {"type": "integer", "minimum": 0},
      "image_url": {"type": "string"}
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func catalogDocumentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(catalogSchemaURL, strings.NewReader(catalogSchema)); err != nil {
			schemaErr = fmt.Errorf("catalog schema load failed: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(catalogSchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("catalog schema compile failed: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// Format is the encoding of a catalog document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// DecodeCatalog validates a catalog document against the catalog schema and the domain
// invariants, and returns its products in document order.
func DecodeCatalog(data []byte, format Format) ([]domain.Product, error) {
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert yaml catalog: %w", err)
		}
		data = converted
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	schema, err := catalogDocumentSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
	}

	var records []productRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode catalog records: %w", err)
	}

	products := make([]domain.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toDomain())
	}
	if err := domain.ValidateCatalog(products); err != nil {
		return nil, err
	}
	return products, nil
}

// EncodeCatalog renders products as a JSON catalog document.
func EncodeCatalog(products []domain.Product) ([]byte, error) {
	records := make([]productRecord, 0, len(products))
	for _, p := range products {
		records = append(records, productRecord{
			ID:           p.ID,
			Name:         p.Name,
			PriceInCents: p.PriceInCents,
			ImageURL:     p.ImageURL,
		})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return data, nil
}

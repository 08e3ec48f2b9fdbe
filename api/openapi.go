// Package api embeds the OpenAPI document of the marketplace HTTP API.
//
// The same document drives request validation and the Swagger UI, and
// internal/generated/servers is generated from it.
package api

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen -generate types,server -package servers -o ../internal/generated/servers/server.gen.go openapi.yaml

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var document []byte

var (
	loadOnce sync.Once
	loaded   *openapi3.T
	loadErr  error

	registerOnce sync.Once
)

// Load parses and validates the embedded document. The result is shared, so
// callers must not mutate it.
func Load() (*openapi3.T, error) {
	loadOnce.Do(func() {
		doc, err := openapi3.NewLoader().LoadFromData(document)
		if err != nil {
			loadErr = fmt.Errorf("parse openapi document: %w", err)
			return
		}
		if err = doc.Validate(context.Background()); err != nil {
			loadErr = fmt.Errorf("validate openapi document: %w", err)
			return
		}
		loaded = doc
	})
	return loaded, loadErr
}

type swaggerDoc struct {
	json string
}

// ReadDoc implements swag.Swagger.
func (d swaggerDoc) ReadDoc() string {
	return d.json
}

// RegisterSwagger publishes the document under swag's default instance name
// so echo-swagger can serve it. Repeated calls are no-ops.
func RegisterSwagger() error {
	doc, err := Load()
	if err != nil {
		return err
	}

	var marshalErr error
	registerOnce.Do(func() {
		raw, err := doc.MarshalJSON()
		if err != nil {
			marshalErr = fmt.Errorf("marshal openapi document: %w", err)
			return
		}
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return marshalErr
}

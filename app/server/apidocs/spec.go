package apidocs

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiYAML []byte

// Swagger loads and validates the embedded OpenAPI document.
func Swagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swg, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = swg.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return swg, nil
}

// SwaggerJSON returns the embedded document as JSON.
func SwaggerJSON() ([]byte, error) {
	swg, err := Swagger()
	if err != nil {
		return nil, err
	}
	return swg.MarshalJSON()
}

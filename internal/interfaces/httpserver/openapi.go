package httpserver

import (
	"net/http"
	"strconv"

	"github.com/invopop/jsonschema"

	"github.com/janhq/product-search-api/internal/config"
	"github.com/janhq/product-search-api/internal/interfaces/httpserver/responses"
)

// BuildOpenAPIDocument describes the public API. Component schemas are reflected from the response types.
func BuildOpenAPIDocument(cfg *config.Config) map[string]any {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}

	schemas := map[string]*jsonschema.Schema{
		"ProductSearchResponse": reflector.Reflect(&responses.ProductSearchResponse{}),
		"SearchFailureResponse": reflector.Reflect(&responses.SearchFailureResponse{}),
		"ErrorResponse":         reflector.Reflect(&responses.ErrorResponse{}),
	}
	for _, schema := range schemas {
		// OpenAPI component schemas must not carry a JSON Schema dialect
		schema.Version = ""
		schema.ID = ""
	}

	ref := func(name string) map[string]any {
		return map[string]any{
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/" + name},
				},
			},
		}
	}
	withDescription := func(desc string, body map[string]any) map[string]any {
		body["description"] = desc
		return body
	}

	opResponses := map[string]any{
		"400": withDescription("Missing or empty query", ref("ErrorResponse")),
		"500": withDescription("Generation service failed", ref("ErrorResponse")),
		"503": withDescription("Upstream unreachable or circuit open", ref("ErrorResponse")),
		"504": withDescription("Upstream timed out", ref("ErrorResponse")),
	}
	failureKey := strconv.Itoa(cfg.SearchFailureStatus)
	if cfg.SearchFailureStatus == http.StatusOK {
		// Legacy mode shares 200 between success and search failure
		opResponses["200"] = map[string]any{
			"description": "Generated summary, or the search failure body",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{
						"oneOf": []map[string]any{
							{"$ref": "#/components/schemas/ProductSearchResponse"},
							{"$ref": "#/components/schemas/SearchFailureResponse"},
						},
					},
				},
			},
		}
	} else {
		opResponses["200"] = withDescription("Generated summary", ref("ProductSearchResponse"))
		failure := withDescription("Product search API rejected the request", ref("SearchFailureResponse"))
		if existing, ok := opResponses[failureKey].(map[string]any); ok {
			failure = map[string]any{
				"description": existing["description"].(string) + ", or the product search API rejected the request",
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{
							"oneOf": []map[string]any{
								{"$ref": "#/components/schemas/ErrorResponse"},
								{"$ref": "#/components/schemas/SearchFailureResponse"},
							},
						},
					},
				},
			}
		}
		opResponses[failureKey] = failure
	}

	searchOperation := map[string]any{
		"summary":     "Search products and summarize the results",
		"operationId": "searchProduct",
		"parameters": []map[string]any{
			{
				"name":     "query",
				"in":       "query",
				"required": true,
				"schema":   map[string]any{"type": "string", "minLength": 1},
			},
		},
		"responses": opResponses,
	}

	return map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":   "Product Search API",
			"version": "1.0.0",
		},
		"paths": map[string]any{
			"/search_product":    map[string]any{"get": searchOperation},
			"/v1/search_product": map[string]any{"get": searchOperation},
		},
		"components": map[string]any{
			"schemas": schemas,
		},
	}
}

// Package productsearch turns a shopper's query into a readable product summary.
package productsearch

import (
	"context"
	"encoding/json"
)

// Result is returned to the caller on success.
type Result struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// SearchPayload is the raw JSON body returned by the product search API.
type SearchPayload struct {
	Raw json.RawMessage
}

// Message is a single chat message sent to the generation service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// SearchClient fetches raw product data for a query.
type SearchClient interface {
	Search(ctx context.Context, query string) (*SearchPayload, error)
}

// Generator produces one completion for a list of messages.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// BreakerReporter is implemented by upstream clients that sit behind a circuit breaker.
type BreakerReporter interface {
	Provider() string
	BreakerState() string
}

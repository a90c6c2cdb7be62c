package types

import "context"

// Shared types live here so the ui packages and the listers can import them
// without importing core itself, which would create a cycle (core -> listers -> core).
//
// Only the types that describe the model service itself (ModelService) stay in /core.

// Partition is the result of splitting the available models into the
// recommended ones and everything else.
//
// Recommended keeps the order of the configured recommended list, Other keeps
// the order the lister returned the models in. The two never share an entry.
type Partition struct {
	Recommended []string
	Other       []string
}

// Empty reports whether there is nothing at all to pick from
func (p Partition) Empty() bool {
	return len(p.Recommended) == 0 && len(p.Other) == 0
}

// ProviderCredential represents one [profile] block from the credentials file,
// with environment overrides applied by the reader.
type ProviderCredential struct {
	ProfileName  string
	APIKey       string
	BaseURL      string
	Organization string
}

// HasAPIKey reports whether the credential can be used for authenticated requests
func (c ProviderCredential) HasAPIKey() bool {
	return c.APIKey != ""
}

// ModelsResponse represents the response body of GET /models on an
// OpenAI compatible API. We only care about the ids, everything else is dropped.
type ModelsResponse struct {
	Object string       `json:"object"`
	Data   []ModelEntry `json:"data"`
}

// ModelEntry is a single model in a ModelsResponse
type ModelEntry struct {
	ID      string `json:"id"`
	Object  string `json:"object,omitempty"`
	OwnedBy string `json:"owned_by,omitempty"`
}

// Lister defines the interface for anything that can tell us which models
// the backend currently supports.
type Lister interface {
	ListModels(ctx context.Context) ([]string, error)
	Name() string
}

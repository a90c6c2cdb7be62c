package listers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sort"
	"strings"

	"github.com/alexmk92/modelpicker/core/types"
)

// OpenAILister asks an OpenAI compatible API for its models
type OpenAILister struct {
	credential types.ProviderCredential
	fallback   []string
	client     *http.Client
}

var _ types.Lister = (*OpenAILister)(nil)

// NewOpenAILister creates a lister for the given credential. Without an API key
// it never touches the network and answers with fallback.
func NewOpenAILister(cred types.ProviderCredential, fallback []string) *OpenAILister {
	return &OpenAILister{
		credential: cred,
		fallback:   slices.Clone(fallback),
		client:     http.DefaultClient,
	}
}

// WithHTTPClient swaps the http client, mostly for tests
func (l *OpenAILister) WithHTTPClient(client *http.Client) *OpenAILister {
	l.client = client
	return l
}

// ListModels calls GET {base_url}/models and returns the ids sorted
func (l *OpenAILister) ListModels(ctx context.Context) ([]string, error) {
	if !l.credential.HasAPIKey() {
		return slices.Clone(l.fallback), nil
	}

	url := strings.TrimRight(l.credential.BaseURL, "/") + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build models request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+l.credential.APIKey)
	req.Header.Set("Accept", "application/json")
	if l.credential.Organization != "" {
		req.Header.Set("OpenAI-Organization", l.credential.Organization)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("models request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var modelsResponse types.ModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResponse); err != nil {
		return nil, fmt.Errorf("failed to parse models response: %w", err)
	}

	models := make([]string, 0, len(modelsResponse.Data))
	for _, m := range modelsResponse.Data {
		if m.ID != "" {
			models = append(models, m.ID)
		}
	}
	sort.Strings(models)

	return models, nil
}

// Name returns the name of the lister
func (l *OpenAILister) Name() string {
	return ListerOpenAI.String()
}

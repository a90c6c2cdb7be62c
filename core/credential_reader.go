package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexmk92/modelpicker/core/types"
)

// DefaultBaseURL is used when neither the credentials file nor the environment
// name an API endpoint.
const DefaultBaseURL = "https://api.openai.com/v1"

// CredentialReader handles reading and parsing the provider credentials file.
//
// The format is INI-like, one [profile] per provider account:
//
//	[default]
//	api_key = sk-...
//	base_url = https://api.openai.com/v1
//	organization = org-...
type CredentialReader struct {
	credentials map[string]types.ProviderCredential
}

func NewCredentialReader() *CredentialReader {
	return &CredentialReader{
		credentials: make(map[string]types.ProviderCredential),
	}
}

// DefaultCredentialsPath returns ~/.config/modelpicker/credentials
func DefaultCredentialsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "modelpicker", "credentials"), nil
}

// LoadFile loads and parses the credentials file at path. A missing file is not
// an error, the environment can still provide everything we need.
func (cr *CredentialReader) LoadFile(path string) error {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open credentials file: %w", err)
	}
	defer file.Close()

	return cr.Load(file)
}

// Load parses credentials from r, merging them over anything already loaded
func (cr *CredentialReader) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var currentProfile string
	var currentCredential types.ProviderCredential

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if currentProfile != "" {
				cr.credentials[currentProfile] = currentCredential
			}

			currentProfile = strings.TrimSpace(strings.Trim(line, "[]"))
			currentCredential = types.ProviderCredential{
				ProfileName: currentProfile,
			}
			continue
		}

		if currentProfile == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch key {
		case "api_key", "openai_api_key":
			currentCredential.APIKey = value
		case "base_url":
			currentCredential.BaseURL = strings.TrimRight(value, "/")
		case "organization", "org_id":
			currentCredential.Organization = value
		}
	}

	if currentProfile != "" {
		cr.credentials[currentProfile] = currentCredential
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading credentials file: %w", err)
	}

	return nil
}

// Get returns the credential for a specific profile
func (cr *CredentialReader) Get(profile string) (types.ProviderCredential, bool) {
	credential, exists := cr.credentials[profile]
	return credential, exists
}

// Profiles returns every profile name found, sorted
func (cr *CredentialReader) Profiles() []string {
	profiles := make([]string, 0, len(cr.credentials))
	for profile := range cr.credentials {
		profiles = append(profiles, profile)
	}
	sort.Strings(profiles)

	return profiles
}

// ResolveCredential returns the credential for profile with OPENAI_API_KEY,
// OPENAI_BASE_URL and OPENAI_ORG_ID applied on top. An unknown profile is fine
// as long as the environment fills in the gaps.
func (cr *CredentialReader) ResolveCredential(profile string) types.ProviderCredential {
	credential, exists := cr.Get(profile)
	if !exists {
		credential = types.ProviderCredential{ProfileName: profile}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		credential.APIKey = key
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		credential.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if org := os.Getenv("OPENAI_ORG_ID"); org != "" {
		credential.Organization = org
	}

	if credential.BaseURL == "" {
		credential.BaseURL = DefaultBaseURL
	}

	return credential
}

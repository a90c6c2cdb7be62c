package listers

import (
	"fmt"
	"strings"

	"github.com/alexmk92/modelpicker/core/types"
)

// ListerName represents the source we ask for the available models
type ListerName int

const (
	ListerOpenAI ListerName = iota
	ListerStatic
	ListerUnknown
)

// String returns the string representation of the lister
func (n ListerName) String() string {
	switch n {
	case ListerOpenAI:
		return "openai"
	case ListerStatic:
		return "static"
	default:
		return "unknown"
	}
}

// ParseLister parses a string to a ListerName
func ParseLister(s string) (ListerName, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "openai", "":
		return ListerOpenAI, nil
	case "static":
		return ListerStatic, nil
	default:
		return ListerUnknown, fmt.Errorf("invalid model lister '%s', valid options are: openai, static", s)
	}
}

// GetLister returns the lister for name.
//
// fallback is what a lister answers with when it has nothing better, for the
// OpenAI lister that means no API key, for the static lister no configured models.
func GetLister(name ListerName, cred types.ProviderCredential, models, fallback []string) (types.Lister, error) {
	switch name {
	case ListerOpenAI:
		return NewOpenAILister(cred, fallback), nil
	case ListerStatic:
		if len(models) == 0 {
			models = fallback
		}
		return NewStaticLister(models), nil
	default:
		return nil, fmt.Errorf("unknown model lister: %v", name)
	}
}

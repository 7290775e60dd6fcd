package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-quizz/pkg/interfaces"
)

// ParseFrontMatter splits an optional metadata header from the markdown
// body. Sources without a header are returned unchanged with an empty
// FrontMatter.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

type frontMatterEnvelope struct {
	Title       string         `yaml:"title" toml:"title" json:"title"`
	Description string         `yaml:"description" toml:"description" json:"description"`
	CreatedByID string         `yaml:"createdById" toml:"createdById" json:"createdById"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	custom := make(map[string]any, len(env.Custom))
	for key, value := range env.Custom {
		custom[key] = value
	}

	owner := strings.TrimSpace(env.CreatedByID)
	if owner == "" {
		if alias, ok := custom["created_by"].(string); ok {
			owner = strings.TrimSpace(alias)
		}
	}

	return interfaces.FrontMatter{
		Title:       strings.TrimSpace(env.Title),
		Description: strings.TrimSpace(env.Description),
		CreatedByID: owner,
		Custom:      custom,
	}
}

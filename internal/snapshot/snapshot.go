// Package snapshot reads collection metadata from a schema snapshot file
// produced by `directus schema snapshot`.
package snapshot

import (
	"context"
	"fmt"
	"os"

	"github.com/danielroe/directus-typegen/internal/directus"
	"github.com/danielroe/directus-typegen/internal/model"
	"github.com/danielroe/directus-typegen/internal/source"
	"gopkg.in/yaml.v3"
)

const providerName = "directus snapshot"

type File struct {
	Version     int                   `yaml:"version"`
	Directus    string                `yaml:"directus"`
	Vendor      string                `yaml:"vendor"`
	Collections []directus.Collection `yaml:"collections"`
	Fields      []directus.Field      `yaml:"fields"`
}

type Provider struct {
	Path          string
	IncludeSystem bool
}

func (p *Provider) FetchCollections(ctx context.Context) ([]model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, &source.FetchError{Provider: providerName, Op: "read " + p.Path, Err: err}
	}

	f, err := Read(p.Path)
	if err != nil {
		return nil, &source.FetchError{Provider: providerName, Op: "read " + p.Path, Err: err}
	}

	return directus.Assemble(f.Collections, f.Fields, p.IncludeSystem), nil
}

func Read(filePath string) (*File, error) {
	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf(`failed to read snapshot file "%s": %w`, filePath, err)
	}

	var file File
	if err := yaml.Unmarshal(fileData, &file); err != nil {
		return nil, fmt.Errorf(`failed to unmarshal snapshot file "%s": %w`, filePath, err)
	}

	return &file, nil
}

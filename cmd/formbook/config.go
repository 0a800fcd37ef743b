package main

import (
	"context"
	"os"

	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"gopkg.in/yaml.v3"
)

// config is the lookups file: static lookup lists standing in for the
// services that normally supply them, plus the record metadata.
type config struct {
	Metadata        models.Metadata         `yaml:"metadata"`
	Institutions    []models.Institution    `yaml:"institutions"`
	Programs        []models.ProgramOption  `yaml:"programs"`
	FundingAgencies []string                `yaml:"fundingAgencies"`
	FileTypes       []models.FileTypeOption `yaml:"fileTypes"`
	CancerTypes     []string                `yaml:"cancerTypes"`
	Species         []string                `yaml:"species"`
}

func loadConfig(path string) (*config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *config) fetchers() lookup.Fetchers {
	return lookup.Fetchers{
		Institutions:    constant(c.Institutions),
		Programs:        constant(c.Programs),
		FundingAgencies: constant(c.FundingAgencies),
		FileTypes:       constant(c.FileTypes),
		CancerTypes:     constant(c.CancerTypes),
		Species:         constant(c.Species),
	}
}

func constant[T any](list []T) func(context.Context) ([]T, error) {
	return func(context.Context) ([]T, error) {
		return list, nil
	}
}

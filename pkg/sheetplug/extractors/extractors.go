// Package extractors derives exportable artifacts from a processed dataset.
package extractors

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetplug-go/pkg/sheetplug"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/extractions"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/output"
	"go.uber.org/zap"
)

// Derivation produces the value of one artifact.
type Derivation struct {
	// Name is the artifact name, used as file name and top-level key.
	Name string
	// Optional derivations are skipped when a table they need is missing.
	Optional bool
	// Derive computes the artifact value.
	Derive func(ds *models.Dataset) (any, error)
}

// Artifact is a derived value ready to be written.
type Artifact struct {
	Name  string
	Value any
}

// Extractor runs a fixed sequence of derivations.
type Extractor struct {
	Derivations []Derivation
	Logger      *zap.Logger
}

// New returns an extractor with the default derivations. extractedSheet is
// the output table of the extract-products step.
func New(extractedSheet string, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		Derivations: []Derivation{
			{Name: "rules", Derive: DeriveRules},
			{Name: "products", Optional: true, Derive: DeriveProducts},
			{Name: "products_extracted", Optional: true, Derive: DeriveSheet(extractedSheet)},
			{Name: "branch_summary", Optional: true, Derive: DeriveSheet(extractions.BranchSummarySheet)},
		},
		Logger: logger,
	}
}

// Derive runs every derivation in order.
func (e *Extractor) Derive(ds *models.Dataset) ([]Artifact, error) {
	var artifacts []Artifact
	for _, d := range e.Derivations {
		value, err := d.Derive(ds)
		if err != nil {
			var missing *sheetplug.MissingTableError
			if d.Optional && errors.As(err, &missing) {
				e.Logger.Info("skipping artifact", zap.String("artifact", d.Name), zap.Error(err))
				continue
			}
			return nil, fmt.Errorf("derive %s: %w", d.Name, err)
		}
		artifacts = append(artifacts, Artifact{Name: d.Name, Value: value})
	}
	return artifacts, nil
}

// ExtractAll derives every artifact and writes one YAML file per artifact,
// followed by a manifest. It returns the written paths.
func (e *Extractor) ExtractAll(ds *models.Dataset, outDir string, manifest Manifest) ([]string, error) {
	artifacts, err := e.Derive(ds)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, a := range artifacts {
		path, err := output.WriteArtifact(outDir, a.Name, a.Value)
		if err != nil {
			return nil, err
		}
		e.Logger.Debug("wrote artifact", zap.String("artifact", a.Name), zap.String("path", path))
		paths = append(paths, path)
		manifest.Artifacts = append(manifest.Artifacts, a.Name)
	}

	path, err := output.WriteArtifact(outDir, "manifest", manifest.toMap())
	if err != nil {
		return nil, err
	}
	return append(paths, path), nil
}

// Manifest describes one extraction run.
type Manifest struct {
	Source    string
	GitSHA    string
	Artifacts []string
}

func (m Manifest) toMap() output.Map {
	doc := output.Map{}.Set("source", m.Source)
	if m.GitSHA != "" {
		doc = doc.Set("git_sha", m.GitSHA)
	}
	artifacts := m.Artifacts
	if artifacts == nil {
		artifacts = []string{}
	}
	return doc.Set("artifacts", artifacts)
}

// Package topograph is the public facade over the snapshot pipeline:
// load → correlate → classify → analyze. Every invocation works on a
// fresh catalog, so repeated runs are fully isolated.
package topograph

import (
	"github.com/mkanyo/topograph/internal/analyze"
	"github.com/mkanyo/topograph/internal/classify"
	"github.com/mkanyo/topograph/internal/correlate"
	"github.com/mkanyo/topograph/internal/domain"
	"github.com/mkanyo/topograph/internal/ingest"
)

type Catalog = domain.Catalog

type Snapshot = domain.Snapshot

type Finding = domain.Finding

type Severity = domain.Severity

const (
	SeverityInfo    = domain.SeverityInfo
	SeverityWarning = domain.SeverityWarning
	SeverityError   = domain.SeverityError
)

// LoadSnapshot reads a directory of AWS CLI JSON exports into a
// snapshot. Missing files degrade to empty batches.
func LoadSnapshot(dir string) (*Snapshot, error) {
	in, err := ingest.Load(dir)
	if err != nil {
		return nil, err
	}
	return ingest.Build(in), nil
}

// BuildCatalog runs correlation and classification over the snapshot
// and returns the completed, read-only catalog.
func BuildCatalog(snap *Snapshot) *Catalog {
	correlate.Link(snap)
	classify.Subnets(snap.Catalog)
	return snap.Catalog
}

// FindIssues inspects a completed catalog and returns the findings
// list. The catalog is not modified.
func FindIssues(cat *Catalog) []Finding {
	return analyze.New(cat).FindIssues()
}

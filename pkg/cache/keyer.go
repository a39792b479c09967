package cache

import "github.com/matzehuels/antcolor/pkg/colony"

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey identifies a coloring of the graph with the given hash.
	ResultKey(graphHash string, opts ResultKeyOpts) string

	// ArtifactKey identifies a rendering of the document with the given hash.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ResultKeyOpts are the run inputs that change a coloring.
type ResultKeyOpts struct {
	Params colony.Params `json:"params"`
	Seed   uint64        `json:"seed"`
}

// ArtifactKeyOpts are the render inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Title    string  `json:"title,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes every input into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey returns result:<hash>. Workers and ReportEvery do not change the
// coloring and are left out, so runs differing only in them share an entry.
func (DefaultKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	opts.Params.Workers = 0
	opts.Params.ReportEvery = 0
	return hashKey("result", graphHash, opts)
}

// ArtifactKey returns artifact:<hash>.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

package registry

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/hashicorp/go-version"
)

// Metadata is the subset of a registry package document kitctl needs.
type Metadata struct {
	Name      string            `json:"name"`
	DistTags  map[string]string `json:"dist-tags"`
	Versions  []string          `json:"versions"`
	FetchedAt time.Time         `json:"fetchedAt"`
}

// Latest returns the dist-tags.latest version, or "" when the registry has none.
func (m *Metadata) Latest() string {
	if m == nil {
		return ""
	}
	return m.DistTags["latest"]
}

// document mirrors the registry response, where versions is an object keyed by version.
type document struct {
	Name     string                     `json:"name"`
	DistTags map[string]string          `json:"dist-tags"`
	Versions map[string]json.RawMessage `json:"versions"`
}

func parseDocument(data []byte) (*Metadata, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(doc.Versions))
	for v := range doc.Versions {
		versions = append(versions, v)
	}
	return &Metadata{
		Name:     doc.Name,
		DistTags: doc.DistTags,
		Versions: SortVersions(versions),
	}, nil
}

// SortVersions orders versions newest first. Strings that are not semantic
// versions sort after all valid ones, in reverse lexical order.
func SortVersions(versions []string) []string {
	out := make([]string, len(versions))
	copy(out, versions)

	parsed := make(map[string]*version.Version, len(out))
	for _, v := range out {
		if pv, err := version.NewSemver(v); err == nil {
			parsed[v] = pv
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		vi, okI := parsed[out[i]]
		vj, okJ := parsed[out[j]]
		switch {
		case okI && okJ:
			return vi.GreaterThan(vj)
		case okI != okJ:
			return okI
		default:
			return out[i] > out[j]
		}
	})
	return out
}

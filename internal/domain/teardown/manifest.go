// Package teardown describes how the data graph of one tenant is removed.
package teardown

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed manifest.toml
var defaultManifest []byte

const defaultScopeColumn = "business_id"

var tableNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Step deletes the rows of one table that belong to a tenant.
type Step struct {
	Table      string `toml:"table"`
	Column     string `toml:"column"`
	Parent     string `toml:"parent"`
	ForeignKey string `toml:"foreign_key"`
	Since      int    `toml:"since"`
	Optional   bool   `toml:"optional"`
	Root       bool   `toml:"root"`
}

// ScopeColumn is the column compared against the tenant id (directly, or on
// the parent table for parent-scoped steps).
func (s Step) ScopeColumn() string {
	if s.Column != "" {
		return s.Column
	}
	return defaultScopeColumn
}

func (s Step) ViaParent() bool {
	return s.Parent != ""
}

type Manifest struct {
	Version int    `toml:"version"`
	Steps   []Step `toml:"steps"`
}

// DefaultManifest returns the embedded teardown plan.
func DefaultManifest() (Manifest, error) {
	return ParseManifest(defaultManifest)
}

func ParseManifest(raw []byte) (Manifest, error) {
	var manifest Manifest
	if err := toml.Unmarshal(raw, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if err := manifest.Validate(); err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}

// Validate checks the ordering rules: children before parents, the tenant
// row exactly once and last, no table twice.
func (m Manifest) Validate() error {
	if m.Version <= 0 {
		return fmt.Errorf("%w: version must be positive", ErrInvalidManifest)
	}
	if len(m.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidManifest)
	}

	position := make(map[string]int, len(m.Steps))
	for i, step := range m.Steps {
		if !tableNamePattern.MatchString(step.Table) {
			return fmt.Errorf("%w: bad table name %q", ErrInvalidManifest, step.Table)
		}
		if _, dup := position[step.Table]; dup {
			return fmt.Errorf("%w: table %q listed twice", ErrInvalidManifest, step.Table)
		}
		if step.Since <= 0 || step.Since > m.Version {
			return fmt.Errorf("%w: table %q has since=%d outside 1..%d", ErrInvalidManifest, step.Table, step.Since, m.Version)
		}
		if step.Column != "" && !tableNamePattern.MatchString(step.Column) {
			return fmt.Errorf("%w: bad column %q", ErrInvalidManifest, step.Column)
		}
		if step.ViaParent() {
			if !tableNamePattern.MatchString(step.Parent) || !tableNamePattern.MatchString(step.ForeignKey) {
				return fmt.Errorf("%w: table %q has bad parent reference", ErrInvalidManifest, step.Table)
			}
		}
		if step.Root != (i == len(m.Steps)-1) {
			return fmt.Errorf("%w: tenant root must be the single last step", ErrInvalidManifest)
		}
		position[step.Table] = i
	}

	for i, step := range m.Steps {
		if !step.ViaParent() {
			continue
		}
		parentAt, ok := position[step.Parent]
		if !ok {
			return fmt.Errorf("%w: parent %q of %q is not in the plan", ErrInvalidManifest, step.Parent, step.Table)
		}
		if parentAt < i {
			return fmt.Errorf("%w: %q must be deleted before its parent %q", ErrInvalidManifest, step.Table, step.Parent)
		}
	}
	return nil
}

// Plan returns the steps that apply to a database at schemaVersion. A zero or
// unknown version is treated as the newest known version.
func (m Manifest) Plan(schemaVersion int) []Step {
	if schemaVersion <= 0 || schemaVersion > m.Version {
		schemaVersion = m.Version
	}

	steps := make([]Step, 0, len(m.Steps))
	for _, step := range m.Steps {
		if step.Since > schemaVersion {
			continue
		}
		steps = append(steps, step)
	}
	return steps
}

// Tables lists every table named by the manifest in plan order.
func (m Manifest) Tables() []string {
	out := make([]string, 0, len(m.Steps))
	for _, step := range m.Steps {
		out = append(out, step.Table)
	}
	return out
}

func (m Manifest) String() string {
	return fmt.Sprintf("teardown manifest v%d [%s]", m.Version, strings.Join(m.Tables(), ","))
}

package policy

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"gopkg.in/yaml.v3"
)

type file struct {
	Policies map[audit.Kind]*LabelPolicy `yaml:"policies"`
}

// Load returns the built-in policies with any kinds declared in the YAML file
// at path replacing their defaults. An empty path yields the defaults.
func Load(path string) (Set, error) {
	set := Defaults()
	if path == "" {
		return set, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	overrides, err := Parse(data)
	if err != nil {
		return nil, err
	}
	for kind, p := range overrides {
		set[kind] = p
	}
	return set, nil
}

// Parse decodes and compiles the policies declared in a YAML document.
func Parse(data []byte) (Set, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode policy file: %w", err)
	}
	known := make(map[audit.Kind]struct{})
	for _, k := range audit.Kinds() {
		known[k] = struct{}{}
	}
	set := make(Set, len(f.Policies))
	for kind, p := range f.Policies {
		if _, ok := known[kind]; !ok {
			return nil, fmt.Errorf("%w: %s", audit.ErrUnknownKind, kind)
		}
		if p == nil {
			return nil, fmt.Errorf("policy %s is empty", kind)
		}
		if p.Name == "" {
			p.Name = string(kind)
		}
		if err := p.Compile(); err != nil {
			return nil, fmt.Errorf("invalid policy %s: %w", kind, err)
		}
		set[kind] = p
	}
	return set, nil
}

// Digest identifies the effective thresholds and vocabularies. Verdicts
// cached under one digest are never reused under another.
func (s Set) Digest() string {
	data, err := yaml.Marshal(file{Policies: s})
	if err != nil {
		return "unversioned"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:12]
}

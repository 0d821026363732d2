// Package converter turns legacy imperative rig model source into the
// modern declarative dialect. The pipeline is Extract -> ResolveHierarchy
// -> Classify -> Emit; each stage allocates fresh state per call, so
// concurrent conversions need no coordination.
package converter

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed rigdata.yaml
var rigDataYAML []byte

type archetypeSignature struct {
	Name      string   `yaml:"name"`
	Signature []string `yaml:"signature"`
}

type rigData struct {
	NameMap    map[string]string    `yaml:"nameMap"`
	Archetypes []archetypeSignature `yaml:"archetypes"`
}

// knowledge is the rig knowledge base, loaded once at process start and
// treated as immutable afterwards.
var knowledge rigData

func init() {
	if err := yaml.Unmarshal(rigDataYAML, &knowledge); err != nil {
		panic("converter: embedded rig data is invalid: " + err.Error())
	}
}

// NormalizeName maps a legacy part name to its canonical modern spelling.
// Names without a table entry pass through unchanged.
func NormalizeName(name string) string {
	if canonical, ok := knowledge.NameMap[name]; ok {
		return canonical
	}
	return name
}

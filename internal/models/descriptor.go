package models

// Archetype identifies the creature-rig family a part set belongs to.
// The archetype selects which animation template the synthesizer emits.
type Archetype string

const (
	// ArchetypeArthropod is the full multi-limb rig: segmented body,
	// eight paired legs, claw arms, mandibles and a stinger-tipped tail.
	ArchetypeArthropod Archetype = "arthropod"
	// ArchetypeSerpent is a rig driven only by a segmented tail chain.
	ArchetypeSerpent Archetype = "serpent"
	// ArchetypeGeneric is the fallback when no signature matches.
	ArchetypeGeneric Archetype = "generic"
)

// ModelPart is a named rigid box primitive extracted from legacy source.
// Box holds x, y, z offsets followed by width, height, depth.
type ModelPart struct {
	Name     string     `json:"name"`
	TexU     int        `json:"texU"`
	TexV     int        `json:"texV"`
	Box      [6]float64 `json:"box"`
	Pivot    [3]float64 `json:"pivot"`
	Rotation [3]float64 `json:"rotation"` // radians
	Mirror   bool       `json:"mirror"`
}

// AnimationMethod is a raw hand-authored animation method body found in
// the legacy source. The body is opaque text; it is matched against
// archetype templates or echoed as a reference comment, never executed.
type AnimationMethod struct {
	Name   string `json:"name"`
	Params string `json:"params"`
	Body   string `json:"body"`
}

// ModelDescriptor is the structured intermediate model produced by the
// extractor. It is created fresh per conversion and never shared.
type ModelDescriptor struct {
	ClassName     string            `json:"className"`
	Namespace     string            `json:"namespace"`
	TextureWidth  int               `json:"textureWidth"`
	TextureHeight int               `json:"textureHeight"`
	WingSpeed     float64           `json:"wingSpeed"`
	Parts         []*ModelPart      `json:"parts"`
	Hierarchy     map[string]string `json:"hierarchy"` // child -> parent
	Animations    []AnimationMethod `json:"animations"`
	Archetype     Archetype         `json:"archetype"`
	Notes         []string          `json:"notes"` // non-fatal repair log
}

// Part returns the named part, or nil.
func (d *ModelDescriptor) Part(name string) *ModelPart {
	for _, p := range d.Parts {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// HasPart reports whether the descriptor contains the named part.
func (d *ModelDescriptor) HasPart(name string) bool {
	return d.Part(name) != nil
}

// PartNames returns part names in declaration order.
func (d *ModelDescriptor) PartNames() []string {
	names := make([]string, 0, len(d.Parts))
	for _, p := range d.Parts {
		names = append(names, p.Name)
	}
	return names
}

package converter

import "github.com/mglucas0123/JavaCraft-Dev/internal/models"

// Classify selects the creature-rig archetype for a part set. Archetype
// kinematics are embedded domain knowledge that cannot be derived from
// geometry alone, so this is a deliberate knowledge-base dispatch: the
// first archetype whose signature part set is fully contained in the
// normalized part names wins, Generic otherwise.
func Classify(parts []*models.ModelPart) models.Archetype {
	names := make(map[string]bool, len(parts))
	for _, p := range parts {
		names[p.Name] = true
	}

	for _, sig := range knowledge.Archetypes {
		if containsAll(names, sig.Signature) {
			return models.Archetype(sig.Name)
		}
	}
	return models.ArchetypeGeneric
}

func containsAll(set map[string]bool, required []string) bool {
	for _, name := range required {
		if !set[name] {
			return false
		}
	}
	return true
}

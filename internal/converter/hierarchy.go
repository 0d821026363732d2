package converter

import (
	"fmt"
	"regexp"

	"github.com/mglucas0123/JavaCraft-Dev/internal/models"
)

var addChildRegex = regexp.MustCompile(`(?:\bthis\.)?(\w+)\s*\.addChild\s*\(\s*(?:this\.)?(\w+)\s*\)`)

// ResolveHierarchy scans the source for explicit child-attachment
// statements and returns the child -> parent map in canonical names.
// Attach statements naming unknown parts are skipped; a second distinct
// parent for a child, or a cycle, is fatal. Parts with no incoming edge
// are roots and later attach directly under the mesh root.
func ResolveHierarchy(src string, parts []*models.ModelPart) (map[string]string, error) {
	known := make(map[string]bool, len(parts))
	for _, p := range parts {
		known[p.Name] = true
	}

	edges := make(map[string]string)
	for _, m := range addChildRegex.FindAllStringSubmatch(src, -1) {
		parent := NormalizeName(m[1])
		child := NormalizeName(m[2])
		if !known[parent] || !known[child] {
			continue
		}
		if prev, ok := edges[child]; ok && prev != parent {
			return nil, fmt.Errorf("part %q attached to both %q and %q: %w",
				child, prev, parent, ErrConflictingHierarchy)
		}
		edges[child] = parent
	}

	// A child has at most one parent, so any cycle must be reachable by
	// walking parent links upward from each node.
	for child := range edges {
		seen := map[string]bool{child: true}
		cur := child
		for {
			parent, ok := edges[cur]
			if !ok {
				break
			}
			if seen[parent] {
				return nil, fmt.Errorf("part %q is reachable from itself: %w",
					parent, ErrConflictingHierarchy)
			}
			seen[parent] = true
			cur = parent
		}
	}

	return edges, nil
}

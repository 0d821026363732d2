package converter

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mglucas0123/JavaCraft-Dev/internal/models"
)

// Source-wide patterns, compiled once. The legacy dialect has no canonical
// grammar, so part properties are matched with ordered candidate lists and
// the first hit wins (see extractPart).
var (
	packageRegex = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)\s*;`)
	classRegex   = regexp.MustCompile(`(?m)^\s*(?:public\s+)?(?:final\s+)?class\s+(\w+)(?:\s+extends\s+(\w+))?`)

	fieldDeclRegex = regexp.MustCompile(`\bModelRenderer\s+(\w+)\s*[;=]`)
	inlineNewRegex = regexp.MustCompile(`(?:\bthis\.)?(\w+)\s*=\s*new\s+ModelRenderer\s*\(`)

	texWidthRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\btextureWidth\s*=\s*(-?\d+)`),
		regexp.MustCompile(`\bsuper\s*\(\s*(-?\d+)\s*,\s*-?\d+\s*\)`),
	}
	texHeightRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\btextureHeight\s*=\s*(-?\d+)`),
		regexp.MustCompile(`\bsuper\s*\(\s*-?\d+\s*,\s*(-?\d+)\s*\)`),
	}
	wingSpeedRegex = regexp.MustCompile(`\bwingspeed\s*=\s*([\d.]+)[fF]?`)

	animMethodRegex = regexp.MustCompile(`private\s+void\s+((?:do|set)\w+)\s*\(([^)]*)\)\s*\{`)
)

// Extract parses legacy model source into a structured descriptor.
// Missing animation methods, hierarchy and texture metadata are non-fatal;
// a missing class declaration or an empty part set aborts the conversion.
func Extract(src string) (*models.ModelDescriptor, error) {
	desc := &models.ModelDescriptor{
		TextureWidth:  256,
		TextureHeight: 128,
		WingSpeed:     1.0,
		Hierarchy:     make(map[string]string),
		Archetype:     models.ArchetypeGeneric,
	}

	cm := classRegex.FindStringSubmatch(src)
	if cm == nil {
		return nil, ErrNoClassFound
	}
	desc.ClassName = cm[1]
	if pm := packageRegex.FindStringSubmatch(src); pm != nil {
		desc.Namespace = pm[1]
	}

	e := &extraction{src: src}
	for _, raw := range e.discoverParts() {
		desc.Parts = append(desc.Parts, e.extractPart(raw))
	}
	if len(desc.Parts) == 0 {
		return nil, ErrNoPartsFound
	}

	desc.TextureWidth = e.extractTextureDim(texWidthRegexes, desc.TextureWidth)
	desc.TextureHeight = e.extractTextureDim(texHeightRegexes, desc.TextureHeight)
	if wm := wingSpeedRegex.FindStringSubmatch(src); wm != nil {
		if v, ok := parseNum(wm[1]); ok {
			desc.WingSpeed = v
		}
	}
	desc.Animations = e.extractAnimationMethods()

	e.repair(desc)
	desc.Notes = e.notes
	return desc, nil
}

// extraction holds per-call scratch state; never shared across calls.
type extraction struct {
	src   string
	notes []string
}

func (e *extraction) notef(format string, args ...interface{}) {
	e.notes = append(e.notes, fmt.Sprintf(format, args...))
}

// discoverParts finds every part declaration under the known idioms
// (typed field declaration, inline assignment, constructor expression),
// de-duplicated by canonical name in first-seen order.
func (e *extraction) discoverParts() []string {
	type hit struct {
		pos  int
		name string
	}
	var hits []hit
	for _, re := range []*regexp.Regexp{fieldDeclRegex, inlineNewRegex} {
		for _, m := range re.FindAllStringSubmatchIndex(e.src, -1) {
			hits = append(hits, hit{pos: m[0], name: e.src[m[2]:m[3]]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := make(map[string]bool)
	var names []string
	for _, h := range hits {
		canonical := NormalizeName(h.name)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		names = append(names, h.name)
	}
	return names
}

// extractPart locates the initializer statements for one declared part
// anywhere in the source. Each property has its own candidate pattern
// list; properties left unmatched keep their documented defaults.
func (e *extraction) extractPart(raw string) *models.ModelPart {
	q := regexp.QuoteMeta(raw)
	part := &models.ModelPart{
		Name: NormalizeName(raw),
		Box:  [6]float64{0, 0, 0, 1, 1, 1},
	}

	// Texture offset: constructor arguments, then an explicit setter.
	texPatterns := []*regexp.Regexp{
		regexp.MustCompile(`(?:this\.)?` + q + `\s*=\s*new\s+ModelRenderer\s*\(\s*(?:\(\s*ModelBase\s*\)\s*)?this\s*,\s*(-?\d+)\s*,\s*(-?\d+)\s*\)`),
		regexp.MustCompile(`(?:this\.)?` + q + `\.setTextureOffset\s*\(\s*(-?\d+)\s*,\s*(-?\d+)\s*\)`),
	}
	if m := firstMatch(e.src, texPatterns); m != nil {
		part.TexU, _ = strconv.Atoi(m[1])
		part.TexV, _ = strconv.Atoi(m[2])
	}

	// Box geometry: chained off the constructor expression, or standalone.
	boxPatterns := []*regexp.Regexp{
		regexp.MustCompile(`\(\s*(?:this\.)?` + q + `\s*=\s*new\s+ModelRenderer\s*\((?:[^()]|\([^()]*\))*\)\s*\)\s*\.addBox\s*\(([^)]+)\)`),
		regexp.MustCompile(`(?:this\.)?` + q + `\.addBox\s*\(([^)]+)\)`),
	}
	if m := firstMatch(e.src, boxPatterns); m != nil {
		part.Box = e.parseVec6(raw, m[1], part.Box)
	}

	// Pivot point: setter call, then component-wise field assignments.
	pivotCall := regexp.MustCompile(`(?:this\.)?` + q + `\.setRotationPoint\s*\(([^)]+)\)`)
	if m := pivotCall.FindStringSubmatch(e.src); m != nil {
		part.Pivot = e.parseVec3(raw, m[1], part.Pivot)
	} else {
		e.extractAxisFields(q+`\.rotationPoint`, &part.Pivot)
	}

	// Initial rotation: helper call, then component-wise assignments.
	rotCall := regexp.MustCompile(`(?:this\.)?setRotation\s*\(\s*(?:this\.)?` + q + `\s*,\s*([^)]+)\)`)
	if m := rotCall.FindStringSubmatch(e.src); m != nil {
		part.Rotation = e.parseVec3(raw, m[1], part.Rotation)
	} else {
		e.extractAxisFields(q+`\.rotateAngle`, &part.Rotation)
	}

	mirrorRegex := regexp.MustCompile(`(?:this\.)?` + q + `\.mirror\s*=\s*(true|false)`)
	if m := mirrorRegex.FindStringSubmatch(e.src); m != nil {
		part.Mirror = m[1] == "true"
	}

	return part
}

// extractAxisFields fills vector components from "<prefix>X = v" style
// assignments. Components without an assignment keep their defaults.
func (e *extraction) extractAxisFields(prefix string, vec *[3]float64) {
	for i, axis := range []string{"X", "Y", "Z"} {
		re := regexp.MustCompile(`(?:this\.)?` + prefix + axis + `\s*=\s*(-?[\d.]+)[fF]?`)
		if m := re.FindStringSubmatch(e.src); m != nil {
			if v, ok := parseNum(m[1]); ok {
				vec[i] = v
			}
		}
	}
}

func (e *extraction) extractTextureDim(candidates []*regexp.Regexp, def int) int {
	for _, re := range candidates {
		m := re.FindStringSubmatch(e.src)
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil || v <= 0 {
			e.notef("texture dimension %q is not positive, keeping default %d", m[1], def)
			return def
		}
		return v
	}
	return def
}

// extractAnimationMethods captures private do*/set* method bodies by brace
// matching. Bodies are kept as opaque text for archetype matching and
// reference comments; they are never executed.
func (e *extraction) extractAnimationMethods() []models.AnimationMethod {
	var methods []models.AnimationMethod
	for _, m := range animMethodRegex.FindAllStringSubmatchIndex(e.src, -1) {
		name := e.src[m[2]:m[3]]
		params := e.src[m[4]:m[5]]
		body, ok := matchBraces(e.src, m[1]-1)
		if !ok {
			e.notef("unterminated method body for %s, skipped", name)
			continue
		}
		methods = append(methods, models.AnimationMethod{
			Name:   name,
			Params: strings.TrimSpace(params),
			Body:   strings.TrimSpace(body),
		})
	}
	return methods
}

// matchBraces returns the text between the opening brace at open and its
// matching close brace.
func matchBraces(src string, open int) (string, bool) {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open+1 : i], true
			}
		}
	}
	return "", false
}

// repair is the validation pass over the raw extraction: it clamps and
// pads malformed values so every descriptor downstream is well-formed.
func (e *extraction) repair(desc *models.ModelDescriptor) {
	for _, p := range desc.Parts {
		for i := 3; i < 6; i++ {
			v := p.Box[i]
			if v >= 1 {
				continue
			}
			repaired := math.Max(1, math.Abs(v))
			e.notef("part %s: box dimension %g repaired to %g", p.Name, v, repaired)
			p.Box[i] = repaired
		}
		if p.TexU < 0 {
			e.notef("part %s: negative texture U %d reset to 0", p.Name, p.TexU)
			p.TexU = 0
		}
		if p.TexV < 0 {
			e.notef("part %s: negative texture V %d reset to 0", p.Name, p.TexV)
			p.TexV = 0
		}
	}
}

// firstMatch runs an ordered candidate list and returns the first
// submatch, or nil.
func firstMatch(src string, patterns []*regexp.Regexp) []string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(src); m != nil {
			return m
		}
	}
	return nil
}

// parseNum parses a legacy numeric literal, tolerating f/F/d/D suffixes.
func parseNum(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "fFdD")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseVec3 parses up to three comma-separated components; missing or
// malformed components keep the default and leave a note.
func (e *extraction) parseVec3(part, s string, def [3]float64) [3]float64 {
	out := def
	fields := strings.Split(s, ",")
	for i := 0; i < 3 && i < len(fields); i++ {
		v, ok := parseNum(fields[i])
		if !ok {
			e.notef("part %s: malformed component %q, keeping default", part, strings.TrimSpace(fields[i]))
			continue
		}
		out[i] = v
	}
	if len(fields) < 3 {
		e.notef("part %s: vector has %d of 3 components, padded", part, len(fields))
	}
	return out
}

// parseVec6 parses the six addBox arguments (offsets then dimensions),
// ignoring a trailing scale argument when present.
func (e *extraction) parseVec6(part, s string, def [6]float64) [6]float64 {
	out := def
	fields := strings.Split(s, ",")
	for i := 0; i < 6 && i < len(fields); i++ {
		v, ok := parseNum(fields[i])
		if !ok {
			e.notef("part %s: malformed box component %q, keeping default", part, strings.TrimSpace(fields[i]))
			continue
		}
		out[i] = v
	}
	if len(fields) < 6 {
		e.notef("part %s: box has %d of 6 components, padded", part, len(fields))
	}
	return out
}

package converter

import (
	"fmt"
	"strings"

	"github.com/mglucas0123/JavaCraft-Dev/internal/models"
)

// animStrategy produces the per-tick pose update body and its helper
// methods for one archetype. Strategies are stateless; all rig knowledge
// is encoded in the emitted text.
type animStrategy interface {
	Body(desc *models.ModelDescriptor) []string
	Helpers(desc *models.ModelDescriptor) []string
}

// animRegistry maps archetype -> animation strategy. Selected once per
// conversion by the classifier result.
var animRegistry = map[models.Archetype]animStrategy{
	models.ArchetypeArthropod: arthropodAnim{},
	models.ArchetypeSerpent:   serpentAnim{},
	models.ArchetypeGeneric:   genericAnim{},
}

func strategyFor(a models.Archetype) animStrategy {
	if s, ok := animRegistry[a]; ok {
		return s
	}
	return genericAnim{}
}

// Part-group predicates, matching the legacy converter's detection.

func hasLegParts(desc *models.ModelDescriptor) bool {
	return anyPart(desc, func(n string) bool { return strings.HasPrefix(n, "leg") })
}

func hasTailParts(desc *models.ModelDescriptor) bool {
	return anyPart(desc, func(n string) bool { return strings.HasPrefix(n, "tailseg") })
}

func hasArmParts(desc *models.ModelDescriptor) bool {
	return anyPart(desc, func(n string) bool {
		return strings.Contains(n, "arm") || strings.Contains(n, "pincer") || strings.Contains(n, "claw")
	})
}

func hasMandibleParts(desc *models.ModelDescriptor) bool {
	return anyPart(desc, func(n string) bool {
		return strings.Contains(n, "mandible") || strings.Contains(n, "manpart")
	})
}

func anyPart(desc *models.ModelDescriptor, match func(string) bool) bool {
	for _, p := range desc.Parts {
		if match(strings.ToLower(p.Name)) {
			return true
		}
	}
	return false
}

// genericAnim emits a placeholder stub: no behavioral translation is
// attempted, but discovered method names are preserved as a reference.
type genericAnim struct{}

func (genericAnim) Body(desc *models.ModelDescriptor) []string {
	lines := []string{
		"        // Generic rig: no archetype template applies, so no procedural",
		"        // animation was reconstructed. The original methods are listed",
		"        // below for manual porting.",
	}
	if len(desc.Animations) == 0 {
		lines = append(lines, "        // Original animation methods: none found.")
	} else {
		names := make([]string, 0, len(desc.Animations))
		for _, m := range desc.Animations {
			names = append(names, m.Name)
		}
		lines = append(lines, "        // Original animation methods: "+strings.Join(names, ", "))
	}
	return lines
}

func (genericAnim) Helpers(*models.ModelDescriptor) []string { return nil }

// arthropodAnim reproduces the hand-authored multi-limb kinematics:
// alternating paired-leg gait, mandible snapping, pseudo-randomly gated
// claws, and the full tail chain. Constants and signs follow the legacy
// behavior exactly; visual fidelity is the correctness criterion.
type arthropodAnim struct{}

func (arthropodAnim) Body(desc *models.ModelDescriptor) []string {
	lines := []string{
		"        float newangle = 0.0f;",
		"        float upangle = 0.0f;",
		"        float nextangle = 0.0f;",
		"        final float pi4 = 1.570795f;",
		"",
	}

	legs := hasLegParts(desc)
	arms := hasArmParts(desc)
	tail := hasTailParts(desc)

	if legs {
		lines = append(lines,
			"        // Alternating leg gait; legs 1-4 mirror legs 5-8.",
			"        newangle = Mth.cos(ageInTicks * 2.0f * this.wingspeed) * (float)Math.PI * 0.12f * limbSwingAmount;",
			"        nextangle = Mth.cos((ageInTicks + 0.1f) * 2.0f * this.wingspeed) * (float)Math.PI * 0.12f * limbSwingAmount;",
			"        upangle = 0.0f;",
			"        if (nextangle > newangle) {",
			"            upangle = 0.47f * limbSwingAmount - Math.abs(newangle);",
			"        }",
			"",
			"        doLeftLegAnim(leg1Seg2, leg1Seg3, leg1Seg4, leg1Seg5, newangle, upangle);",
			"        doRightLegAnim(leg5Seg2, leg5Seg3, leg5Seg4, leg5Seg5, -newangle, upangle);",
			"",
		)
		for i := 2; i <= 4; i++ {
			lines = append(lines,
				fmt.Sprintf("        newangle = Mth.cos(ageInTicks * 2.0f * this.wingspeed - %d.0f * pi4) * (float)Math.PI * 0.12f * limbSwingAmount;", i-1),
				fmt.Sprintf("        nextangle = Mth.cos((ageInTicks + 0.1f) * 2.0f * this.wingspeed - %d.0f * pi4) * (float)Math.PI * 0.12f * limbSwingAmount;", i-1),
				"        upangle = 0.0f;",
				"        if (nextangle > newangle) {",
				"            upangle = 0.47f * limbSwingAmount - Math.abs(newangle);",
				"        }",
				fmt.Sprintf("        doLeftLegAnim(leg%dSeg2, leg%dSeg3, leg%dSeg4, leg%dSeg5, newangle, upangle);", i, i, i, i),
				fmt.Sprintf("        doRightLegAnim(leg%dSeg2, leg%dSeg3, leg%dSeg4, leg%dSeg5, -newangle, upangle);", i+4, i+4, i+4, i+4),
				"",
			)
		}
	}

	if hasMandibleParts(desc) {
		lines = append(lines,
			"        // Mandible snap, gated on a 4-second modulus of the tick clock.",
			"        float mandibleAngle;",
			"        if ((int)(ageInTicks * 0.05f) % 4 == 0) {",
			"            mandibleAngle = Mth.cos(ageInTicks * 2.5f * this.wingspeed) * (float)Math.PI * 0.15f;",
			"        } else {",
			"            mandibleAngle = Mth.cos(ageInTicks * 0.5f * this.wingspeed) * (float)Math.PI * 0.05f;",
			"        }",
			"        this.leftManPart2.zRot = mandibleAngle;",
			"        this.rightManPart2.zRot = -mandibleAngle;",
			"",
		)
	}

	if arms || tail {
		lines = append(lines, clawTriggerLines()...)
	}

	if arms {
		lines = append(lines,
			"        if (randomValue == 1 || randomValue == 3) {",
			"            doLeftClawAnim(newangle);",
			"        } else {",
			"            doLeftClawAnim(0.0f);",
			"        }",
			"        if (randomValue == 2 || randomValue == 3) {",
			"            doRightClawAnim(newangle);",
			"        } else {",
			"            doRightClawAnim(0.0f);",
			"        }",
			"",
		)
	}

	if tail {
		lines = append(lines,
			"        if (randomValue2 == 1) {",
			"            doTailAnim(newangle);",
			"        } else {",
			"            doTailAnim(0.0f);",
			"        }",
		)
	}

	return lines
}

// clawTriggerLines emits the deterministic stand-in for the legacy
// pseudo-random claw/tail trigger. The legacy trigger mixed an entity
// identity hash with elapsed ticks; the modulus arithmetic is reproduced
// as observed. This is a documented approximation, not inferred intent.
func clawTriggerLines() []string {
	return []string{
		"        newangle = Mth.cos(ageInTicks * 3.0f * this.wingspeed) * (float)Math.PI * 0.15f;",
		"        nextangle = Mth.cos((ageInTicks + 0.1f) * 3.0f * this.wingspeed) * (float)Math.PI * 0.15f;",
		"",
		"        int randomValue = (int)(ageInTicks * 0.1f + entity.hashCode() * 0.01f) % 20;",
		"        int randomValue2 = (int)(ageInTicks * 0.08f + entity.hashCode() * 0.02f) % 25;",
		"",
		"        if (nextangle > 0.0f && newangle < 0.0f) {",
		"            if ((int)(ageInTicks * 0.05f) % 4 == 0) {",
		"                randomValue = randomValue % 4;",
		"                randomValue2 = randomValue2 % 3;",
		"            }",
		"        }",
		"",
	}
}

func (arthropodAnim) Helpers(desc *models.ModelDescriptor) []string {
	var lines []string
	if hasLegParts(desc) {
		lines = append(lines, legHelperLines()...)
	}
	if hasArmParts(desc) {
		lines = append(lines, clawHelperLines()...)
	}
	if hasTailParts(desc) {
		lines = append(lines, tailHelperLines(desc)...)
	}
	return lines
}

// serpentAnim drives only the tail chain; the trigger arithmetic is the
// same deterministic stand-in as the arthropod's.
type serpentAnim struct{}

func (serpentAnim) Body(desc *models.ModelDescriptor) []string {
	lines := []string{
		"        float newangle = 0.0f;",
		"        float nextangle = 0.0f;",
		"",
	}
	lines = append(lines, clawTriggerLines()...)
	lines = append(lines,
		"        if (randomValue2 == 1) {",
		"            doTailAnim(newangle);",
		"        } else {",
		"            doTailAnim(0.0f);",
		"        }",
	)
	return lines
}

func (serpentAnim) Helpers(desc *models.ModelDescriptor) []string {
	return tailHelperLines(desc)
}

func legHelperLines() []string {
	return []string{
		"",
		"    private void doLeftLegAnim(ModelPart seg2, ModelPart seg3, ModelPart seg4, ModelPart seg5, float angle, float upangle) {",
		"        seg2.yRot = angle;",
		"        seg3.yRot = angle;",
		"        seg4.yRot = angle;",
		"        seg5.yRot = angle;",
		"",
		"        // Leg kinematic chain: each segment trails the previous by a",
		"        // sine projection of the swing angle over a fixed link length.",
		"        seg3.z = (float)(seg2.z - Math.sin(angle) * 6.0);",
		"        seg3.x = (float)(seg2.x - Math.abs(Math.sin(angle) * 6.0) + 6.0);",
		"        seg4.z = (float)(seg3.z - Math.sin(angle) * 9.0);",
		"        seg4.x = (float)(seg3.x - Math.abs(Math.sin(angle) * 9.0) + 9.0);",
		"        seg5.z = (float)(seg4.z - Math.sin(angle) * 1.0);",
		"        seg5.x = (float)(seg4.x - Math.abs(Math.sin(angle) * 1.0) + 1.0);",
		"",
		"        seg2.zRot = -upangle - 0.929f;",
		"        seg3.zRot = -upangle + 0.632f;",
		"        seg3.y = seg2.y + (float)(11.5 * Math.sin(seg2.zRot));",
		"        seg4.y = seg3.y + (float)(11.5 * Math.sin(seg3.zRot));",
		"        seg5.y = seg4.y + 6.5f;",
		"    }",
		"",
		"    private void doRightLegAnim(ModelPart seg2, ModelPart seg3, ModelPart seg4, ModelPart seg5, float angle, float upangle) {",
		"        seg2.yRot = angle;",
		"        seg3.yRot = angle;",
		"        seg4.yRot = angle;",
		"        seg5.yRot = -angle;",
		"",
		"        seg3.z = (float)(seg2.z + Math.sin(angle) * 6.0);",
		"        seg3.x = (float)(seg2.x + Math.abs(Math.sin(angle) * 6.0) - 6.0);",
		"        seg4.z = (float)(seg3.z + Math.sin(angle) * 9.0);",
		"        seg4.x = (float)(seg3.x + Math.abs(Math.sin(angle) * 9.0) - 9.0);",
		"        seg5.z = (float)(seg4.z + Math.sin(angle) * 1.0);",
		"        seg5.x = (float)(seg4.x + Math.abs(Math.sin(angle) * 1.0) - 1.0);",
		"",
		"        seg2.zRot = upangle + 0.929f;",
		"        seg3.zRot = upangle - 0.632f;",
		"        seg3.y = seg2.y - (float)(11.5 * Math.sin(seg2.zRot));",
		"        seg4.y = seg3.y - (float)(11.5 * Math.sin(seg3.zRot));",
		"        seg5.y = seg4.y + 6.5f;",
		"    }",
	}
}

func clawHelperLines() []string {
	return []string{
		"",
		"    private void doLeftClawAnim(float angle) {",
		"        this.leftArmSeg1.yRot = -1.57f + angle;",
		"        this.leftArmSeg2.z = (float)(-22.0 - Math.cos(this.leftArmSeg1.yRot) * 12.0);",
		"        this.leftArmSeg3.z = this.leftArmSeg2.z - 11.0f;",
		"        this.leftArmSeg4.z = this.leftArmSeg2.z - 11.0f;",
		"        this.leftPincer.z = this.leftArmSeg2.z - 11.0f;",
		"        this.leftArmSeg3.yRot = 0.074f + angle;",
		"        this.leftPincer.yRot = 0.371f - angle;",
		"    }",
		"",
		"    private void doRightClawAnim(float angle) {",
		"        this.rightArmSeg1.yRot = 1.57f - angle;",
		"        this.rightArmSeg2.z = (float)(-22.0 - Math.cos(this.rightArmSeg1.yRot) * 12.0);",
		"        this.rightArmSeg3.z = this.rightArmSeg2.z - 11.0f;",
		"        this.rightArmSeg4.z = this.rightArmSeg2.z - 11.0f;",
		"        this.rightPincer.z = this.rightArmSeg2.z - 11.0f;",
		"        this.rightArmSeg3.yRot = -0.074f - angle;",
		"        this.rightPincer.yRot = -0.371f + angle;",
		"    }",
	}
}

// tailLink describes one segment of the tail kinematic chain: the fixed
// angular offset expression applied on top of the predecessor's rotation,
// and the link length used to project position from the predecessor.
type tailLink struct {
	name     string
	rotExpr  string // references PREV for the predecessor
	link     string // empty for the chain root
	copyPrev bool   // segment rides along with the predecessor
}

// tailChain is the observed legacy chain. tailseg8 copies tailseg7 and is
// skipped as a predecessor, so the stingers project from tailseg7.
var tailChain = []tailLink{
	{name: "tailseg1", rotExpr: "0.594f + angle"},
	{name: "tailseg2", rotExpr: "this.PREV.xRot + 0.48399997f + angle", link: "9.0"},
	{name: "tailseg3", rotExpr: "this.PREV.xRot + 0.6320001f + angle", link: "10.0"},
	{name: "tailseg4", rotExpr: "this.PREV.xRot + 0.5569999f - angle", link: "10.0"},
	{name: "tailseg5", rotExpr: "this.PREV.xRot + 0.63199997f - angle", link: "10.0"},
	{name: "tailseg6", rotExpr: "this.PREV.xRot - 5.501f - angle * 3.0f / 2.0f - 0.4f", link: "10.0"},
	{name: "tailseg7", rotExpr: "this.PREV.xRot - 2.822f - angle * 2.5f - 2.2f", link: "10.0"},
	{name: "tailseg8", copyPrev: true},
	{name: "stinger1", rotExpr: "this.PREV.xRot + 0.0f + angle * 0.66f", link: "10.0"},
	{name: "stinger2", rotExpr: "this.PREV.xRot - 0.48f + angle", link: "3.0"},
	{name: "stinger3", rotExpr: "this.PREV.xRot - 1.01f + angle * 1.7f", link: "3.0"},
}

// tailHelperLines renders doTailAnim for the chain segments the rig
// actually has. Absent segments drop out and the chain re-links to the
// nearest present predecessor.
func tailHelperLines(desc *models.ModelDescriptor) []string {
	lines := []string{
		"",
		"    private void doTailAnim(float angle) {",
	}

	prev := ""
	first := true
	for _, seg := range tailChain {
		if !desc.HasPart(seg.name) {
			continue
		}
		if !first {
			lines = append(lines, "")
		}
		switch {
		case seg.copyPrev && prev != "":
			lines = append(lines,
				fmt.Sprintf("        this.%s.xRot = this.%s.xRot;", seg.name, prev),
				fmt.Sprintf("        this.%s.y = this.%s.y;", seg.name, prev),
				fmt.Sprintf("        this.%s.z = this.%s.z;", seg.name, prev),
			)
		case prev == "":
			lines = append(lines,
				fmt.Sprintf("        this.%s.xRot = 0.594f + angle;", seg.name))
			prev = seg.name
		default:
			rot := strings.ReplaceAll(seg.rotExpr, "PREV", prev)
			lines = append(lines,
				fmt.Sprintf("        this.%s.xRot = %s;", seg.name, rot),
				fmt.Sprintf("        this.%s.y = (float)(this.%s.y - Math.sin(this.%s.xRot) * %s);", seg.name, prev, prev, seg.link),
				fmt.Sprintf("        this.%s.z = (float)(this.%s.z + Math.cos(this.%s.xRot) * %s);", seg.name, prev, prev, seg.link),
			)
			prev = seg.name
		}
		first = false
	}

	lines = append(lines, "    }")
	return lines
}

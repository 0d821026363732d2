package converter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mglucas0123/JavaCraft-Dev/internal/models"
)

// Semantic emission order. Parts are grouped into fixed categories for
// declarations, constructor assignments and mesh definitions regardless
// of how the legacy source ordered them, so output is deterministic and
// diffable. Parts outside every category trail in first-seen order.
var (
	bodyOrder = []string{"head", "seg1", "seg2", "seg3", "seg4", "seg5", "seg6", "seg7", "seg8"}
	tailOrder = []string{"tailseg1", "tailseg2", "tailseg3", "tailseg4", "tailseg5", "tailseg6",
		"tailseg7", "tailseg8", "stinger1", "stinger2", "stinger3"}
	leftArmOrder  = []string{"leftShoulder", "leftArmSeg1", "leftArmSeg2", "leftArmSeg3", "leftArmSeg4", "leftPincer"}
	rightArmOrder = []string{"rightShoulder", "rightArmSeg1", "rightArmSeg2", "rightArmSeg3", "rightArmSeg4", "rightPincer"}
	headSubOrder  = []string{"leftEye", "rightEye", "leftMandible", "rightMandible", "leftManPart2", "rightManPart2"}
)

func legGroupOrder(leg int) []string {
	names := make([]string, 0, 5)
	for seg := 1; seg <= 5; seg++ {
		names = append(names, fmt.Sprintf("leg%dSeg%d", leg, seg))
	}
	return names
}

// namedGroups returns the ordered category list: each entry is the
// category's part names filtered to those present in the descriptor.
func namedGroups(desc *models.ModelDescriptor) [][]string {
	groups := [][]string{
		presentOnly(desc, bodyOrder),
		presentOnly(desc, tailOrder),
		presentOnly(desc, leftArmOrder),
		presentOnly(desc, rightArmOrder),
		presentOnly(desc, headSubOrder),
	}
	for leg := 1; leg <= 8; leg++ {
		groups = append(groups, presentOnly(desc, legGroupOrder(leg)))
	}

	categorized := make(map[string]bool)
	for _, g := range groups {
		for _, n := range g {
			categorized[n] = true
		}
	}
	var rest []string
	for _, p := range desc.Parts {
		if !categorized[p.Name] {
			rest = append(rest, p.Name)
		}
	}
	groups = append(groups, rest)
	return groups
}

func presentOnly(desc *models.ModelDescriptor, order []string) []string {
	var out []string
	for _, n := range order {
		if desc.HasPart(n) {
			out = append(out, n)
		}
	}
	return out
}

func semanticOrder(desc *models.ModelDescriptor) []string {
	var out []string
	for _, g := range namedGroups(desc) {
		out = append(out, g...)
	}
	return out
}

// Emit renders the modern declarative source for a resolved descriptor.
// It is a pure function of the descriptor: equal inputs produce
// byte-identical output.
func Emit(desc *models.ModelDescriptor) string {
	modern := modernClassName(desc.ClassName)
	anim := strategyFor(desc.Archetype)

	var header []string
	if desc.Namespace != "" {
		header = append(header, "package "+desc.Namespace+";", "")
	}
	header = append(header,
		"import com.mojang.blaze3d.vertex.PoseStack;",
		"import com.mojang.blaze3d.vertex.VertexConsumer;",
		"import net.minecraft.client.model.EntityModel;",
		"import net.minecraft.client.model.geom.ModelPart;",
		"import net.minecraft.client.model.geom.PartPose;",
		"import net.minecraft.client.model.geom.builders.*;",
		"import net.minecraft.util.Mth;",
		"import net.minecraft.world.entity.Entity;",
		"",
		"import javax.annotation.Nonnull;",
		"",
		fmt.Sprintf("public class %s<T extends Entity> extends EntityModel<T> {", modern),
		"",
		fmt.Sprintf("    // %d parts resolved from the legacy rig", len(desc.Parts)),
		"    private final ModelPart root;",
		"",
	)

	body := [][]string{
		declarationLines(desc),
		{fmt.Sprintf("    private float wingspeed = %s;", formatPos(desc.WingSpeed))},
		constructorLines(desc, modern),
		layerLines(desc),
		renderLines(),
		setupAnimLines(desc, anim),
		anim.Helpers(desc),
	}

	var out []string
	out = append(out, header...)
	out = append(out, renderSections(body)...)
	out = append(out, "}")
	return strings.Join(out, "\n") + "\n"
}

// renderSections is the single formatting pass: trailing blank separators
// are trimmed per section and sections are joined by one blank line.
func renderSections(sections [][]string) []string {
	var out []string
	for _, sec := range sections {
		for len(sec) > 0 && strings.TrimSpace(sec[len(sec)-1]) == "" {
			sec = sec[:len(sec)-1]
		}
		if len(sec) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, sec...)
	}
	return out
}

func modernClassName(legacy string) string {
	if strings.HasPrefix(legacy, "Model") && len(legacy) > len("Model") {
		return legacy[len("Model"):] + "Model"
	}
	return legacy + "Model"
}

// declarationLines emits the ModelPart fields. Leg groups share one line
// per leg; every other category declares one field per line.
func declarationLines(desc *models.ModelDescriptor) []string {
	var lines []string
	groups := namedGroups(desc)
	prevWasLeg := false
	for i, g := range groups {
		if len(g) == 0 {
			continue
		}
		isLegGroup := i >= 5 && i < 13
		if len(lines) > 0 && !(isLegGroup && prevWasLeg) {
			lines = append(lines, "")
		}
		if isLegGroup {
			lines = append(lines, "    private final ModelPart "+strings.Join(g, ", ")+";")
		} else {
			for _, n := range g {
				lines = append(lines, "    private final ModelPart "+n+";")
			}
		}
		prevWasLeg = isLegGroup
	}
	return lines
}

// constructorLines wires each field from its container part. Children are
// looked up on their parent field, so assignment order follows the
// hierarchy walk; for a flat rig this is the plain semantic order.
func constructorLines(desc *models.ModelDescriptor, modern string) []string {
	lines := []string{
		fmt.Sprintf("    public %s(ModelPart root) {", modern),
		"        this.root = root;",
		"",
	}
	for _, name := range hierarchyOrder(desc) {
		container := "root"
		if parent, ok := desc.Hierarchy[name]; ok {
			container = "this." + parent
		}
		lines = append(lines, fmt.Sprintf("        this.%s = %s.getChild(%q);", name, container, name))
	}
	lines = append(lines, "    }")
	return lines
}

// hierarchyOrder walks roots in semantic order, each followed by its
// children, guaranteeing parents are handled before their children.
func hierarchyOrder(desc *models.ModelDescriptor) []string {
	order := semanticOrder(desc)
	children := make(map[string][]string)
	for _, name := range order {
		if parent, ok := desc.Hierarchy[name]; ok {
			children[parent] = append(children[parent], name)
		}
	}

	var out []string
	var walk func(name string)
	walk = func(name string) {
		out = append(out, name)
		for _, child := range children[name] {
			walk(child)
		}
	}
	for _, name := range order {
		if _, hasParent := desc.Hierarchy[name]; !hasParent {
			walk(name)
		}
	}
	return out
}

// layerLines emits createBodyLayer. Roots attach to the mesh root; each
// distinct parent gets exactly one PartDefinition lookup, emitted before
// its children regardless of how many children reference it.
func layerLines(desc *models.ModelDescriptor) []string {
	lines := []string{
		"    public static LayerDefinition createBodyLayer() {",
		"        MeshDefinition meshdefinition = new MeshDefinition();",
		"        PartDefinition partdefinition = meshdefinition.getRoot();",
		"",
	}

	order := semanticOrder(desc)
	children := make(map[string][]string)
	for _, name := range order {
		if parent, ok := desc.Hierarchy[name]; ok {
			children[parent] = append(children[parent], name)
		}
	}

	var walk func(name, container string)
	walk = func(name, container string) {
		lines = append(lines, partDefinitionLines(desc.Part(name), container)...)
		lines = append(lines, "")
		kids := children[name]
		if len(kids) == 0 {
			return
		}
		defVar := name + "Def"
		lines = append(lines, fmt.Sprintf("        PartDefinition %s = %s.getChild(%q);", defVar, container, name), "")
		for _, child := range kids {
			walk(child, defVar)
		}
	}
	for _, name := range order {
		if _, hasParent := desc.Hierarchy[name]; !hasParent {
			walk(name, "partdefinition")
		}
	}

	lines = append(lines,
		fmt.Sprintf("        return LayerDefinition.create(meshdefinition, %d, %d);", desc.TextureWidth, desc.TextureHeight),
		"    }",
	)
	return lines
}

func partDefinitionLines(p *models.ModelPart, container string) []string {
	builder := "CubeListBuilder.create()"
	if p.Mirror {
		builder += ".mirror()"
	}
	return []string{
		fmt.Sprintf("        %s.addOrReplaceChild(%q, %s", container, p.Name, builder),
		fmt.Sprintf("            .texOffs(%d, %d).addBox(%s, %s, %s, %s, %s, %s),",
			p.TexU, p.TexV,
			formatPos(p.Box[0]), formatPos(p.Box[1]), formatPos(p.Box[2]),
			formatDim(p.Box[3]), formatDim(p.Box[4]), formatDim(p.Box[5])),
		fmt.Sprintf("            PartPose.offsetAndRotation(%s, %s, %s, %s, %s, %s));",
			formatPos(p.Pivot[0]), formatPos(p.Pivot[1]), formatPos(p.Pivot[2]),
			formatRot(p.Rotation[0]), formatRot(p.Rotation[1]), formatRot(p.Rotation[2])),
	}
}

func renderLines() []string {
	return []string{
		"    @Override",
		"    public void renderToBuffer(@Nonnull PoseStack poseStack, @Nonnull VertexConsumer vertexConsumer, int packedLight, int packedOverlay, int color) {",
		"        root.render(poseStack, vertexConsumer, packedLight, packedOverlay, color);",
		"    }",
	}
}

func setupAnimLines(desc *models.ModelDescriptor, anim animStrategy) []string {
	lines := []string{
		"    @Override",
		"    public void setupAnim(T entity, float limbSwing, float limbSwingAmount, float ageInTicks, float netHeadYaw, float headPitch) {",
	}
	lines = append(lines, anim.Body(desc)...)
	lines = append(lines, "    }")
	return lines
}

// formatPos renders positions and box offsets as single-precision float
// literals with at least one decimal place.
func formatPos(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "f"
}

// formatRot renders rotations at full double precision; rotations are far
// more sensitive to truncation than positions.
func formatRot(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "f"
}

// formatDim renders a box dimension. Dimensions are integral after the
// repair pass.
func formatDim(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}

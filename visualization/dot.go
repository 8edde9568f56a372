package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/anggasct/trafficlight"
)

// Light is the part of a traffic light the generators need
type Light interface {
	CurrentPhase() trafficlight.Phase
	IntervalRange() (time.Duration, time.Duration)
}

// DOTGenerator generates Graphviz DOT format representations of a light's
// two-phase cycle
type DOTGenerator struct {
	light   Light
	options DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowIntervals    bool
	HighlightCurrent bool
	RankDirection    string // "TB", "LR", "BT", "RL"
	NodeShape        string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowIntervals:    true,
		HighlightCurrent: true,
		RankDirection:    "LR",
		NodeShape:        "circle",
	}
}

// NewDOTGenerator creates a new DOT generator for the given light
func NewDOTGenerator(light Light, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		light:   light,
		options: opts,
	}
}

var phaseColors = map[trafficlight.Phase]string{
	trafficlight.Red:   "red",
	trafficlight.Green: "green",
}

// Generate creates a DOT representation of the light
func (g *DOTGenerator) Generate() (string, error) {
	if g.light == nil {
		return "", fmt.Errorf("no light to render")
	}

	var dot strings.Builder

	dot.WriteString("digraph TrafficLight {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generateStates(&dot)
	g.generateTransitions(&dot)

	dot.WriteString("}\n")

	return dot.String(), nil
}

// generateStates generates DOT nodes for both phases
func (g *DOTGenerator) generateStates(dot *strings.Builder) {
	current := g.light.CurrentPhase()

	dot.WriteString("  // Phases\n")
	dot.WriteString("  \"start\" [shape=point];\n")

	for _, phase := range []trafficlight.Phase{trafficlight.Red, trafficlight.Green} {
		fillColor := "white"
		label := phase.String()
		if g.options.HighlightCurrent && phase == current {
			fillColor = phaseColors[phase]
			label += "\\n(current)"
		}

		dot.WriteString(fmt.Sprintf("  \"%s\" [style=\"filled\" color=%s fillcolor=%s label=\"%s\"];\n",
			phase, phaseColors[phase], fillColor, label))
	}
	dot.WriteString("\n")
}

// generateTransitions generates the initial edge and the two toggles
func (g *DOTGenerator) generateTransitions(dot *strings.Builder) {
	label := "toggle"
	if g.options.ShowIntervals {
		lo, hi := g.light.IntervalRange()
		label = fmt.Sprintf("after %s-%s", lo, hi)
	}

	dot.WriteString("  // Transitions\n")
	dot.WriteString(fmt.Sprintf("  \"start\" -> \"%s\";\n", trafficlight.Red))
	for _, from := range []trafficlight.Phase{trafficlight.Red, trafficlight.Green} {
		dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [label=\"%s\"];\n", from, from.Toggle(), label))
	}
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// GenerateSVG converts the DOT representation to SVG by calling Graphviz
func (g *DOTGenerator) GenerateSVG() (string, error) {
	dotContent, err := g.Generate()
	if err != nil {
		return "", err
	}

	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}

package visualization_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anggasct/trafficlight"
	"github.com/anggasct/trafficlight/visualization"
)

type staticLight struct {
	phase trafficlight.Phase
}

func (l staticLight) CurrentPhase() trafficlight.Phase { return l.phase }

func (l staticLight) IntervalRange() (time.Duration, time.Duration) {
	return 4 * time.Second, 6 * time.Second
}

func TestDOTGeneration(t *testing.T) {
	light, err := trafficlight.New()
	if err != nil {
		t.Fatalf("Failed to create light: %v", err)
	}

	dotContent, err := visualization.NewDOTGenerator(light).Generate()
	if err != nil {
		t.Fatalf("Failed to generate DOT: %v", err)
	}

	if !strings.Contains(dotContent, "digraph TrafficLight") {
		t.Error("DOT content should contain graph declaration")
	}

	if !strings.Contains(dotContent, "\"RED\" -> \"GREEN\"") {
		t.Error("DOT content should contain transition from RED to GREEN")
	}

	if !strings.Contains(dotContent, "\"GREEN\" -> \"RED\"") {
		t.Error("DOT content should contain transition from GREEN to RED")
	}

	if !strings.Contains(dotContent, "\"start\" -> \"RED\"") {
		t.Error("DOT content should mark RED as initial")
	}

	if !strings.Contains(dotContent, "after 4s-6s") {
		t.Error("DOT content should label edges with the interval range")
	}

	if !strings.Contains(dotContent, "RED\\n(current)") {
		t.Error("DOT content should highlight the current phase")
	}

	t.Logf("Generated DOT content:\n%s", dotContent)
}

func TestDOTGenerationCurrentGreen(t *testing.T) {
	dotContent, err := visualization.NewDOTGenerator(staticLight{phase: trafficlight.Green}).Generate()
	if err != nil {
		t.Fatalf("Failed to generate DOT: %v", err)
	}

	if !strings.Contains(dotContent, "GREEN\\n(current)") {
		t.Error("DOT content should highlight GREEN")
	}

	if strings.Contains(dotContent, "RED\\n(current)") {
		t.Error("DOT content should not highlight RED")
	}
}

func TestDOTGenerationCustomOptions(t *testing.T) {
	opts := visualization.DOTOptions{
		RankDirection: "TB",
		NodeShape:     "box",
	}

	dotContent, err := visualization.NewDOTGenerator(staticLight{}, opts).Generate()
	if err != nil {
		t.Fatalf("Failed to generate DOT: %v", err)
	}

	if !strings.Contains(dotContent, "rankdir=TB") || !strings.Contains(dotContent, "shape=box") {
		t.Error("DOT content should apply custom options")
	}

	if strings.Contains(dotContent, "(current)") {
		t.Error("DOT content should not highlight when disabled")
	}

	if !strings.Contains(dotContent, "label=\"toggle\"") {
		t.Error("DOT content should use plain labels without intervals")
	}
}

func TestDOTGenerationNilLight(t *testing.T) {
	if _, err := visualization.NewDOTGenerator(nil).Generate(); err == nil {
		t.Error("Expected error for nil light")
	}
}

func TestDOTGenerateToFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "light.dot")

	if err := visualization.NewDOTGenerator(staticLight{}).GenerateToFile(filename); err != nil {
		t.Fatalf("Failed to write DOT file: %v", err)
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read DOT file: %v", err)
	}

	if !strings.HasPrefix(string(content), "digraph TrafficLight") {
		t.Error("DOT file should start with graph declaration")
	}
}

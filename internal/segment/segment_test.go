package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ProseOnly(t *testing.T) {
	segs := Parse("Just some transcribed text.\nAnother line.")
	require.Len(t, segs, 1)
	assert.Equal(t, Prose, segs[0].Kind)
	assert.Equal(t, "Just some transcribed text.\nAnother line.", segs[0].Text)
}

func TestParse_EmptyAndWhitespace(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("   \n\t  "))
}

func TestParse_SingleDiagram(t *testing.T) {
	raw := "Hello [[DIAGRAM_CODE_START]]plt.plot(x)[[DIAGRAM_CODE_END]] World"
	segs := Parse(raw)
	require.Len(t, segs, 3)
	assert.Equal(t, Segment{Kind: Prose, Text: "Hello"}, segs[0])
	assert.Equal(t, Segment{Kind: Diagram, Text: "plt.plot(x)"}, segs[1])
	assert.Equal(t, Segment{Kind: Prose, Text: "World"}, segs[2])
}

func TestParse_MultilineDiagramSource(t *testing.T) {
	raw := "Intro\n[[DIAGRAM_CODE_START]]\nimport matplotlib.pyplot as plt\nplt.savefig('generated_diagram.png')\n[[DIAGRAM_CODE_END]]\nOutro"
	segs := Parse(raw)
	require.Len(t, segs, 3)
	assert.Equal(t, Diagram, segs[1].Kind)
	assert.Contains(t, segs[1].Text, "import matplotlib.pyplot as plt")
	assert.Contains(t, segs[1].Text, "plt.savefig")
}

func TestParse_OrderPreservedAcrossPairs(t *testing.T) {
	raw := "a[[DIAGRAM_CODE_START]]c1[[DIAGRAM_CODE_END]]b[[DIAGRAM_CODE_START]]c2[[DIAGRAM_CODE_END]]c"
	segs := Parse(raw)
	require.Len(t, segs, 5)
	kinds := []Kind{Prose, Diagram, Prose, Diagram, Prose}
	texts := []string{"a", "c1", "b", "c2", "c"}
	for i, seg := range segs {
		assert.Equal(t, kinds[i], seg.Kind, "segment %d", i)
		assert.Equal(t, texts[i], seg.Text, "segment %d", i)
	}
}

func TestParse_DiagramCountMatchesPairs(t *testing.T) {
	raw := "[[DIAGRAM_CODE_START]]x[[DIAGRAM_CODE_END]][[DIAGRAM_CODE_START]]y[[DIAGRAM_CODE_END]]"
	diagrams := 0
	for _, seg := range Parse(raw) {
		if seg.Kind == Diagram {
			diagrams++
		}
	}
	assert.Equal(t, 2, diagrams)
}

func TestParse_EmptyDiagramKept(t *testing.T) {
	segs := Parse("before [[DIAGRAM_CODE_START]]   [[DIAGRAM_CODE_END]] after")
	require.Len(t, segs, 3)
	assert.Equal(t, Diagram, segs[1].Kind)
	assert.Equal(t, "", segs[1].Text)
}

func TestParse_UnmatchedStartMarkerIsProse(t *testing.T) {
	raw := "text before [[DIAGRAM_CODE_START]] dangling"
	segs := Parse(raw)
	require.Len(t, segs, 1)
	assert.Equal(t, Prose, segs[0].Kind)
	assert.Contains(t, segs[0].Text, StartMarker)
}

func TestParse_StripsCodeFences(t *testing.T) {
	raw := "[[DIAGRAM_CODE_START]]```python\nplt.plot(x)\n```[[DIAGRAM_CODE_END]]"
	segs := Parse(raw)
	require.Len(t, segs, 1)
	assert.Equal(t, "plt.plot(x)", segs[0].Text)
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "MyFile1jpg_2", SanitizeID("My File (1).jpg_2"))
	assert.Equal(t, "scan_0", SanitizeID("scan_0"), "already-sanitized input is a no-op")
	assert.Equal(t, SanitizeID("a b/c..d"), SanitizeID(SanitizeID("a b/c..d")), "idempotent")
	assert.Equal(t, "", SanitizeID("!@#$%"))
	assert.Equal(t, "résuméjpg_0", SanitizeID("résumé.jpg_0"), "non-ASCII letters survive")
}

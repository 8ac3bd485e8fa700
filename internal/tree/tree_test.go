package tree

import (
	"strings"
	"testing"

	"github.com/Ephraim-9/epistle/internal/types"
)

// TestRenderTextDirectoryBeforeFile verifies lexicographic sibling ordering:
// the directory "a" renders before the file "b.ts".
func TestRenderTextDirectoryBeforeFile(testingHandle *testing.T) {
	scannedFiles := []types.ScannedFile{
		{Path: "b.ts"},
		{Path: "a/z.ts"},
	}
	rendered := RenderText(Build(scannedFiles))

	expected := "├── a\n" +
		"│   └── z.ts\n" +
		"└── b.ts\n"
	if rendered != expected {
		testingHandle.Fatalf("unexpected tree:\n%s\nwant:\n%s", rendered, expected)
	}
}

// TestRenderTextDeterministic verifies identical file sets produce
// byte-identical tree text regardless of input order.
func TestRenderTextDeterministic(testingHandle *testing.T) {
	forwardOrder := []types.ScannedFile{
		{Path: "src/main.go"},
		{Path: "src/util/helpers.go"},
		{Path: "README.md"},
	}
	reverseOrder := []types.ScannedFile{
		{Path: "README.md"},
		{Path: "src/util/helpers.go"},
		{Path: "src/main.go"},
	}

	firstRendering := RenderText(Build(forwardOrder))
	secondRendering := RenderText(Build(reverseOrder))
	if firstRendering != secondRendering {
		testingHandle.Fatalf("tree rendering not deterministic:\n%s\nvs:\n%s", firstRendering, secondRendering)
	}
}

// TestRenderTextAnnotations verifies binary and oversized leaves carry
// inline annotation suffixes.
func TestRenderTextAnnotations(testingHandle *testing.T) {
	scannedFiles := []types.ScannedFile{
		{Path: "big.sql", IsOversized: true},
		{Path: "logo.dat", IsBinary: true},
		{Path: "main.go"},
	}
	rendered := RenderText(Build(scannedFiles))

	if !strings.Contains(rendered, "big.sql [oversized]") {
		testingHandle.Errorf("missing oversized annotation:\n%s", rendered)
	}
	if !strings.Contains(rendered, "logo.dat [binary]") {
		testingHandle.Errorf("missing binary annotation:\n%s", rendered)
	}
	if strings.Contains(rendered, "main.go [") {
		testingHandle.Errorf("plain text leaf must not be annotated:\n%s", rendered)
	}
}

// TestRenderTextConnectors verifies last-child connectors differ from earlier ones.
func TestRenderTextConnectors(testingHandle *testing.T) {
	scannedFiles := []types.ScannedFile{
		{Path: "nested/inner/deep.txt"},
		{Path: "nested/sibling.txt"},
	}
	rendered := RenderText(Build(scannedFiles))

	expected := "└── nested\n" +
		"    ├── inner\n" +
		"    │   └── deep.txt\n" +
		"    └── sibling.txt\n"
	if rendered != expected {
		testingHandle.Fatalf("unexpected connectors:\n%s\nwant:\n%s", rendered, expected)
	}
}

package render

import (
	"encoding/json"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/Ephraim-9/epistle/internal/types"
)

const (
	goManifestName   = "go.mod"
	nodeManifestName = "package.json"

	goTechnologyName   = "Go"
	nodeTechnologyName = "Node.js"
)

// technologyByDependency maps well-known declared dependency names to
// technology hints shown in the metadata block.
var technologyByDependency = map[string]string{
	"react":          "React",
	"react-dom":      "React",
	"vue":            "Vue",
	"svelte":         "Svelte",
	"next":           "Next.js",
	"nuxt":           "Nuxt",
	"express":        "Express",
	"fastify":        "Fastify",
	"typescript":     "TypeScript",
	"vite":           "Vite",
	"webpack":        "Webpack",
	"jest":           "Jest",
	"vitest":         "Vitest",
	"tailwindcss":    "Tailwind CSS",
	"electron":       "Electron",
	"@angular/core":  "Angular",
	"@nestjs/core":   "NestJS",
	"prisma":         "Prisma",
	"@prisma/client": "Prisma",
	"graphql":        "GraphQL",

	"github.com/spf13/cobra":       "Cobra",
	"github.com/gin-gonic/gin":     "Gin",
	"github.com/labstack/echo/v4":  "Echo",
	"github.com/gofiber/fiber/v2":  "Fiber",
	"google.golang.org/grpc":       "gRPC",
	"gorm.io/gorm":                 "GORM",
	"github.com/jackc/pgx/v5":      "PostgreSQL",
	"github.com/redis/go-redis/v9": "Redis",
	"k8s.io/client-go":             "Kubernetes",
	"github.com/aws/aws-sdk-go-v2": "AWS",
}

type nodeManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// detectTechnologies parses declared dependency names from the root go.mod
// and package.json manifests in the scanned snapshot and maps them to
// technology hints. The result is deduplicated and sorted.
func detectTechnologies(scannedFiles []types.ScannedFile) []string {
	hintSet := make(map[string]struct{})

	for _, scannedFile := range scannedFiles {
		if !scannedFile.HasContent() {
			continue
		}
		switch scannedFile.Path {
		case goManifestName:
			hintSet[goTechnologyName] = struct{}{}
			for _, dependencyName := range goDependencyNames(scannedFile.Content) {
				addHint(hintSet, dependencyName)
			}
		case nodeManifestName:
			hintSet[nodeTechnologyName] = struct{}{}
			for _, dependencyName := range nodeDependencyNames(scannedFile.Content) {
				addHint(hintSet, dependencyName)
			}
		}
	}

	hints := make([]string, 0, len(hintSet))
	for hint := range hintSet {
		hints = append(hints, hint)
	}
	sort.Strings(hints)
	return hints
}

func addHint(hintSet map[string]struct{}, dependencyName string) {
	if technologyName, known := technologyByDependency[dependencyName]; known {
		hintSet[technologyName] = struct{}{}
	}
}

func goDependencyNames(manifestContent string) []string {
	parsedModFile, parseError := modfile.Parse(goManifestName, []byte(manifestContent), nil)
	if parseError != nil || parsedModFile == nil {
		return nil
	}
	var dependencyNames []string
	for _, requirement := range parsedModFile.Require {
		if requirement == nil || requirement.Mod.Path == "" {
			continue
		}
		dependencyNames = append(dependencyNames, requirement.Mod.Path)
	}
	return dependencyNames
}

func nodeDependencyNames(manifestContent string) []string {
	var manifest nodeManifest
	if unmarshalError := json.Unmarshal([]byte(manifestContent), &manifest); unmarshalError != nil {
		return nil
	}
	var dependencyNames []string
	for dependencyName := range manifest.Dependencies {
		dependencyNames = append(dependencyNames, strings.TrimSpace(dependencyName))
	}
	for dependencyName := range manifest.DevDependencies {
		dependencyNames = append(dependencyNames, strings.TrimSpace(dependencyName))
	}
	return dependencyNames
}

package render

import "fmt"

const errorUnknownPersonaFormat = "unknown persona %q"

// Persona is a fixed reviewer role whose preamble text is injected at the
// top of the document.
type Persona struct {
	Name     string
	Alias    string
	Preamble string
}

var personaCatalog = []Persona{
	{
		Name:  "architect",
		Alias: "arch",
		Preamble: "You are a senior software architect reviewing this repository. " +
			"Focus on module boundaries, dependency direction, and the cost of change. " +
			"Call out structural risks before commenting on local style.",
	},
	{
		Name:  "security",
		Alias: "sec",
		Preamble: "You are a security reviewer examining this repository. " +
			"Look for injection points, unsafe deserialization, secret handling, and " +
			"trust-boundary violations. Rank findings by exploitability.",
	},
	{
		Name:  "refactor",
		Alias: "ref",
		Preamble: "You are a refactoring specialist studying this repository. " +
			"Identify duplication, dead code, and overly coupled units, and propose " +
			"incremental, behavior-preserving refactoring steps.",
	},
}

// resolvePersona looks up a persona by canonical name or alias. An empty
// identifier resolves to no persona.
func resolvePersona(identifier string) (*Persona, error) {
	if identifier == "" {
		return nil, nil
	}
	for personaIndex := range personaCatalog {
		persona := &personaCatalog[personaIndex]
		if persona.Name == identifier || persona.Alias == identifier {
			return persona, nil
		}
	}
	return nil, fmt.Errorf(errorUnknownPersonaFormat, identifier)
}

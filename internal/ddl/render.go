// Package ddl turns an agent specification document into the
// CREATE OR REPLACE AGENT statement that recreates the agent. The
// transformation is pure and deterministic: identical inputs always
// produce byte-identical statements, so regenerated files diff cleanly.
package ddl

import (
	"fmt"
	"strings"

	"github.com/kayz/snowddl/internal/agentspec"
)

// Render builds one complete statement for the fully-qualified agent
// database.schema.name from the raw specification JSON. An empty comment
// omits the COMMENT clause. A document that fails to parse yields a single
// SQL comment line carrying the error, never a partial statement.
func Render(name, database, schema, specJSON, comment string, opts Options) string {
	spec, err := agentspec.Parse([]byte(specJSON))
	if err != nil {
		return fmt.Sprintf("-- Error: %v", err)
	}

	parts := []string{fmt.Sprintf("CREATE OR REPLACE AGENT %s.%s.%s", database, schema, name)}
	if comment != "" {
		parts = append(parts, fmt.Sprintf("COMMENT = '%s'", strings.ReplaceAll(comment, "'", "''")))
	}
	parts = append(parts, "FROM SPECIFICATION", "$$")

	e := &emitter{opts: opts}
	e.emitModels(spec.Models)
	e.emitInstructions(spec.Instructions)
	e.emitTools(spec.Tools)
	e.emitToolResources(spec.ToolResources)
	e.emitOrchestration(spec.Orchestration)
	e.emitProfile(spec.Profile)

	parts = append(parts, strings.Join(e.lines, "\n"), "$$;")
	return strings.Join(parts, "\n")
}

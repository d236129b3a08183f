package ddl

import (
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/kayz/snowddl/internal/agentspec"
)

// Length budgets for free-text fields. A description is truncated to the
// first value, then switches to a block literal when the truncated result
// still exceeds the second value or contains a line break.
const (
	toolDescTruncateAt = 300
	toolDescBlockAt    = 200
	propDescTruncateAt = 150
	propDescBlockAt    = 80
)

// emitter collects the specification body line by line. One emit method
// per top-level section; a section whose field is absent or empty writes
// nothing at all.
type emitter struct {
	opts  Options
	lines []string
}

func (e *emitter) add(line string) {
	e.lines = append(e.lines, line)
}

func (e *emitter) addf(format string, args ...any) {
	e.lines = append(e.lines, fmt.Sprintf(format, args...))
}

func (e *emitter) blank() {
	e.add("")
}

// quote wraps a string scalar in double quotes.
func (e *emitter) quote(s string) string {
	if e.opts.EscapeEmbeddedQuotes {
		s = strings.ReplaceAll(s, `"`, `\"`)
	}
	return `"` + s + `"`
}

// emitText writes a free-text field either as a quoted single line or as a
// block literal. Truncation happens first; the format is decided from the
// truncated result.
func (e *emitter) emitText(key, indent, text string, truncateAt, blockAt int) {
	if e.opts.TruncateDescriptions {
		text = Truncate(text, truncateAt)
	}
	if strings.Contains(text, "\n") || len([]rune(text)) > blockAt {
		e.add(key + " |")
		for _, line := range strings.Split(text, "\n") {
			e.add(indent + line)
		}
	} else {
		e.add(key + " " + e.quote(text))
	}
}

func (e *emitter) emitModels(models *orderedmap.OrderedMap[string, *string]) {
	if models == nil || models.Len() == 0 {
		return
	}
	e.add("models:")
	for pair := models.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			continue
		}
		e.addf("  %s: %s", pair.Key, e.quote(*pair.Value))
	}
	e.blank()
}

func (e *emitter) emitInstructions(ins *agentspec.Instructions) {
	if ins.Empty() {
		return
	}
	e.add("instructions:")
	if ins.Response != "" {
		e.addf("  response: %s", e.quote(ins.Response))
	}
	if ins.Orchestration != "" {
		e.addf("  orchestration: %s", e.quote(ins.Orchestration))
	}
	if ins.System != "" {
		e.addf("  system: %s", e.quote(ins.System))
	}
	if len(ins.SampleQuestions) > 0 {
		e.add("  sample_questions:")
		for _, q := range ins.SampleQuestions {
			if !q.Valid {
				continue
			}
			e.addf("    - question: %s", e.quote(q.Question))
		}
	}
	e.blank()
}

func (e *emitter) emitTools(tools []agentspec.ToolEntry) {
	if len(tools) == 0 {
		return
	}
	e.add("tools:")
	for _, entry := range tools {
		spec := entry.ToolSpec
		if spec == nil {
			continue
		}
		e.add("  - tool_spec:")
		e.addf("      type: %s", e.quote(spec.Type))
		e.addf("      name: %s", e.quote(spec.Name))
		if spec.Description != "" {
			e.emitText("      description:", "        ", spec.Description, toolDescTruncateAt, toolDescBlockAt)
		}
		if spec.InputSchema != nil {
			e.emitInputSchema(spec.InputSchema)
		}
		e.blank()
	}
}

func (e *emitter) emitInputSchema(schema *agentspec.InputSchema) {
	e.add("      input_schema:")
	e.add("        type: object")
	if schema.Properties != nil {
		e.add("        properties:")
		for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
			e.addf("          %s:", pair.Key)
			prop := pair.Value
			// Description goes before type: a block-literal description
			// must not be followed by a quoted line that could be read as
			// part of the literal.
			if prop.Description != nil {
				e.emitText("            description:", "              ", *prop.Description, propDescTruncateAt, propDescBlockAt)
			}
			typ := prop.Type
			if typ == "" {
				typ = "string"
			}
			e.addf("            type: %s", typ)
		}
	}
	if len(schema.Required) > 0 {
		e.add("        required:")
		for _, field := range schema.Required {
			e.addf("          - %s", field)
		}
	}
}

func (e *emitter) emitToolResources(resources *orderedmap.OrderedMap[string, *agentspec.Resource]) {
	if resources == nil || resources.Len() == 0 {
		return
	}
	e.add("tool_resources:")
	for pair := resources.Oldest(); pair != nil; pair = pair.Next() {
		e.addf("  %s:", pair.Key)
		res := pair.Value
		if res == nil || res.Fields == nil {
			e.blank()
			continue
		}
		if env := res.ExecutionEnvironment(); env != nil {
			e.add("    execution_environment:")
			if env.QueryTimeout != nil {
				e.addf("      query_timeout: %d", *env.QueryTimeout)
			}
			if env.Type != nil {
				e.addf("      type: %s", e.quote(*env.Type))
			}
			if env.Warehouse != nil {
				e.addf("      warehouse: %s", e.quote(*env.Warehouse))
			}
		}
		kind := classifyResource(res)
		for _, field := range fieldOrder(kind) {
			raw, ok := res.Get(field)
			if !ok {
				continue
			}
			name := field
			if kind == kindSemanticView && field == "semantic_view" {
				name = string(e.opts.AnalystViewField)
			}
			e.emitResourceField("    ", name, raw)
		}
		e.blank()
	}
}

// emitResourceField writes one resource field: strings quoted, integers
// bare, object values recursed one level with bare nested keys and quoted
// leaf scalars. Values of any other type are passed over.
func (e *emitter) emitResourceField(indent, name string, raw json.RawMessage) {
	if s, ok := rawString(raw); ok {
		e.add(indent + name + ": " + e.quote(s))
		return
	}
	if n, ok := rawInt(raw); ok {
		e.addf("%s%s: %d", indent, name, n)
		return
	}
	if obj, ok := rawObject(raw); ok {
		e.addf("%s%s:", indent, name)
		for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
			if sub, ok := rawObject(pair.Value); ok {
				e.addf("%s  %s:", indent, pair.Key)
				for nested := sub.Oldest(); nested != nil; nested = nested.Next() {
					e.addf("%s    %s: %s", indent, nested.Key, e.quote(rawScalarText(nested.Value)))
				}
			} else {
				e.addf("%s  %s: %s", indent, pair.Key, e.quote(rawScalarText(pair.Value)))
			}
		}
	}
}

func (e *emitter) emitOrchestration(orch *agentspec.Orchestration) {
	if orch == nil || orch.Budget.Empty() {
		return
	}
	e.add("orchestration:")
	e.add("  budget:")
	if orch.Budget.Seconds != nil {
		e.addf("    seconds: %d", *orch.Budget.Seconds)
	}
	if orch.Budget.Tokens != nil {
		e.addf("    tokens: %d", *orch.Budget.Tokens)
	}
}

func (e *emitter) emitProfile(profile *orderedmap.OrderedMap[string, json.RawMessage]) {
	if !e.opts.IncludeProfile {
		return
	}
	if profile == nil || profile.Len() == 0 {
		return
	}
	e.add("profile:")
	for pair := profile.Oldest(); pair != nil; pair = pair.Next() {
		text, ok := profileValue(pair.Value)
		if !ok {
			continue
		}
		e.addf("  %s: %s", pair.Key, e.quote(text))
	}
}

// profileValue returns the display text of a profile attribute, skipping
// empty and null values.
func profileValue(raw json.RawMessage) (string, bool) {
	if s, ok := rawString(raw); ok {
		return s, s != ""
	}
	text := rawScalarText(raw)
	if text == "" || text == "null" || text == "false" || text == "0" {
		return "", false
	}
	if text[0] == '{' || text[0] == '[' {
		return "", false
	}
	return text, true
}

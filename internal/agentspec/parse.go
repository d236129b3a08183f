package agentspec

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ParseError reports a syntactically invalid specification document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Invalid JSON specification - %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes a raw specification document. A syntax error yields only a
// ParseError; there is no partial parse. Fields with an unexpected shape
// are dropped rather than rejected, since the renderer is a pass-through
// and field validation happens upstream.
func Parse(raw []byte) (*Spec, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &ParseError{Err: err}
	}

	spec := &Spec{}
	if data, ok := fields["models"]; ok {
		var m *orderedmap.OrderedMap[string, *string]
		if err := json.Unmarshal(data, &m); err == nil {
			spec.Models = m
		}
	}
	if data, ok := fields["instructions"]; ok {
		var ins *Instructions
		if err := json.Unmarshal(data, &ins); err == nil {
			spec.Instructions = ins
		}
	}
	if data, ok := fields["tools"]; ok {
		var tools []ToolEntry
		if err := json.Unmarshal(data, &tools); err == nil {
			spec.Tools = tools
		}
	}
	if data, ok := fields["tool_resources"]; ok {
		var res *orderedmap.OrderedMap[string, *Resource]
		if err := json.Unmarshal(data, &res); err == nil {
			spec.ToolResources = res
		}
	}
	if data, ok := fields["orchestration"]; ok {
		var orch *Orchestration
		if err := json.Unmarshal(data, &orch); err == nil {
			spec.Orchestration = orch
		}
	}
	if data, ok := fields["profile"]; ok {
		var prof *orderedmap.OrderedMap[string, json.RawMessage]
		if err := json.Unmarshal(data, &prof); err == nil {
			spec.Profile = prof
		}
	}
	return spec, nil
}

package ddl

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/kayz/snowddl/internal/agentspec"
)

// resourceKind tags a tool resource by the shape of its fields. There is
// no explicit tag in the input; the kind is detected from which fields are
// present, once per resource, and drives the emission order.
type resourceKind int

const (
	kindGeneric resourceKind = iota
	kindFunctionOrProcedure
	kindSemanticModelFile
	kindSemanticView
	kindCortexSearch
)

func classifyResource(res *agentspec.Resource) resourceKind {
	if t, ok := stringField(res, "type"); ok && (t == "function" || t == "procedure") {
		return kindFunctionOrProcedure
	}
	if _, ok := res.Get("semantic_model_file"); ok {
		return kindSemanticModelFile
	}
	if _, ok := res.Get("semantic_view"); ok {
		return kindSemanticView
	}
	if _, ok := res.Get("id_column"); ok {
		return kindCortexSearch
	}
	return kindGeneric
}

// fieldOrder returns the fixed emission order for a resource kind. Fields
// absent from the resource are skipped at emission time.
func fieldOrder(kind resourceKind) []string {
	switch kind {
	case kindFunctionOrProcedure:
		return []string{"identifier", "name", "type"}
	case kindSemanticModelFile:
		return []string{"semantic_model_file"}
	case kindSemanticView:
		return []string{"semantic_view"}
	case kindCortexSearch:
		return []string{"id_column", "max_results", "name", "title_column"}
	default:
		return []string{
			"identifier", "name", "type", "semantic_model_file",
			"id_column", "max_results", "title_column", "search_service", "filter",
		}
	}
}

func stringField(res *agentspec.Resource, name string) (string, bool) {
	raw, ok := res.Get(name)
	if !ok {
		return "", false
	}
	return rawString(raw)
}

// rawString decodes raw as a JSON string value.
func rawString(raw json.RawMessage) (string, bool) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || data[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}

// rawInt decodes raw as a JSON integer. Non-integral numbers do not count.
func rawInt(raw json.RawMessage) (int64, bool) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return 0, false
	}
	if c := data[0]; c != '-' && (c < '0' || c > '9') {
		return 0, false
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, false
	}
	return n, true
}

// rawObject decodes raw as a JSON object with key order preserved.
func rawObject(raw json.RawMessage) (*orderedmap.OrderedMap[string, json.RawMessage], bool) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || data[0] != '{' {
		return nil, false
	}
	m := orderedmap.New[string, json.RawMessage]()
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, false
	}
	return m, true
}

// rawScalarText returns the plain text of a scalar value: decoded for
// strings, the literal JSON text for numbers and booleans.
func rawScalarText(raw json.RawMessage) string {
	if s, ok := rawString(raw); ok {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

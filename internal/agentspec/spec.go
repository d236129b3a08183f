package agentspec

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Spec is the root agent specification object as returned by the Cortex
// Agents API. Every field is optional; key order of the mappings is
// preserved so regenerated statements stay diff-stable.
type Spec struct {
	Models        *orderedmap.OrderedMap[string, *string]
	Instructions  *Instructions
	Tools         []ToolEntry
	ToolResources *orderedmap.OrderedMap[string, *Resource]
	Orchestration *Orchestration
	Profile       *orderedmap.OrderedMap[string, json.RawMessage]
}

// Instructions holds the free-text instruction fields and sample questions.
type Instructions struct {
	Response        string           `json:"response,omitempty"`
	Orchestration   string           `json:"orchestration,omitempty"`
	System          string           `json:"system,omitempty"`
	SampleQuestions []SampleQuestion `json:"sample_questions,omitempty"`
}

// Empty reports whether no instruction field is set.
func (i *Instructions) Empty() bool {
	return i == nil ||
		(i.Response == "" && i.Orchestration == "" && i.System == "" && len(i.SampleQuestions) == 0)
}

// SampleQuestion accepts both the plain-string and the {"question": ...}
// object form used interchangeably by the API.
type SampleQuestion struct {
	Question string
	Valid    bool
}

func (q *SampleQuestion) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		q.Question = s
		q.Valid = true
		return nil
	}
	var obj struct {
		Question *string `json:"question"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Question != nil {
		q.Question = *obj.Question
		q.Valid = true
		return nil
	}
	// Unrecognized entry shapes are dropped, not rejected.
	return nil
}

// ToolEntry wraps a single tool declaration. Entries without a tool_spec
// are carried but ignored by the renderer.
type ToolEntry struct {
	ToolSpec *ToolSpec `json:"tool_spec,omitempty"`
}

// ToolSpec declares one callable capability of the agent.
type ToolSpec struct {
	Type        string       `json:"type,omitempty"`
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	InputSchema *InputSchema `json:"input_schema,omitempty"`
}

// InputSchema is the object schema of a tool's arguments.
type InputSchema struct {
	Properties *orderedmap.OrderedMap[string, Property] `json:"properties,omitempty"`
	Required   []string                                 `json:"required,omitempty"`
}

// Property describes one input-schema property. Description is a pointer
// so a present-but-empty description is still emitted.
type Property struct {
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type,omitempty"`
}

// Resource is the binding of a tool name to its backing object. The set
// of fields varies by resource kind, so values are kept raw and in input
// order; classification happens at render time.
type Resource struct {
	Fields *orderedmap.OrderedMap[string, json.RawMessage]
}

func (r *Resource) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, json.RawMessage]()
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	r.Fields = m
	return nil
}

// Get returns the raw value of a resource field.
func (r *Resource) Get(field string) (json.RawMessage, bool) {
	if r == nil || r.Fields == nil {
		return nil, false
	}
	return r.Fields.Get(field)
}

// ExecutionEnvironment returns the parsed execution_environment block, or
// nil when absent or not an object.
func (r *Resource) ExecutionEnvironment() *ExecutionEnvironment {
	raw, ok := r.Get("execution_environment")
	if !ok {
		return nil
	}
	var env ExecutionEnvironment
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil
	}
	return &env
}

// ExecutionEnvironment is the compute context a tool resource runs under.
// Fields are pointers so presence survives the round trip.
type ExecutionEnvironment struct {
	QueryTimeout *int64  `json:"query_timeout,omitempty"`
	Type         *string `json:"type,omitempty"`
	Warehouse    *string `json:"warehouse,omitempty"`
}

func (e *ExecutionEnvironment) Empty() bool {
	return e == nil || (e.QueryTimeout == nil && e.Type == nil && e.Warehouse == nil)
}

// Orchestration carries the agent's run limits.
type Orchestration struct {
	Budget *Budget `json:"budget,omitempty"`
}

// Budget bounds an agent run by wall-clock seconds and token count.
type Budget struct {
	Seconds *int64 `json:"seconds,omitempty"`
	Tokens  *int64 `json:"tokens,omitempty"`
}

func (b *Budget) Empty() bool {
	return b == nil || (b.Seconds == nil && b.Tokens == nil)
}

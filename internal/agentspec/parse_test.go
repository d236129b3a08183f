package agentspec

import (
	"errors"
	"testing"
)

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("{bad"))
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
}

func TestParsePreservesMappingOrder(t *testing.T) {
	spec, err := Parse([]byte(`{"models":{"z":"m1","a":"m2","m":"m3"}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var keys []string
	for pair := spec.Models.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	want := []string{"z", "a", "m"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("key order lost: got %v, want %v", keys, want)
		}
	}
}

func TestParseSampleQuestionForms(t *testing.T) {
	spec, err := Parse([]byte(`{"instructions":{"sample_questions":["plain",{"question":"wrapped"},42]}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	qs := spec.Instructions.SampleQuestions
	if len(qs) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(qs))
	}
	if !qs[0].Valid || qs[0].Question != "plain" {
		t.Fatalf("string form mis-parsed: %+v", qs[0])
	}
	if !qs[1].Valid || qs[1].Question != "wrapped" {
		t.Fatalf("object form mis-parsed: %+v", qs[1])
	}
	if qs[2].Valid {
		t.Fatalf("numeric entry must be invalid")
	}
}

func TestParseDropsMisshapenFields(t *testing.T) {
	spec, err := Parse([]byte(`{"tools":"not-a-list","orchestration":{"budget":{"seconds":30}}}`))
	if err != nil {
		t.Fatalf("shape problems must not fail the parse: %v", err)
	}
	if spec.Tools != nil {
		t.Fatalf("misshapen tools field must be dropped")
	}
	if spec.Orchestration == nil || spec.Orchestration.Budget == nil || *spec.Orchestration.Budget.Seconds != 30 {
		t.Fatalf("well-formed sibling fields must survive")
	}
}

func TestParseResourceFields(t *testing.T) {
	spec, err := Parse([]byte(`{"tool_resources":{"t":{
		"execution_environment":{"query_timeout":60,"type":"warehouse","warehouse":"WH"},
		"id_column":"ID"}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, ok := spec.ToolResources.Get("t")
	if !ok {
		t.Fatalf("resource missing")
	}
	env := res.ExecutionEnvironment()
	if env == nil || env.QueryTimeout == nil || *env.QueryTimeout != 60 {
		t.Fatalf("execution environment mis-parsed: %+v", env)
	}
	if _, ok := res.Get("id_column"); !ok {
		t.Fatalf("id_column missing from resource fields")
	}
}

package formskema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/formskema"
)

func TestNode_JSONKeepsPropertyOrder(t *testing.T) {
	n := mustNode(t, `{"type":"object","properties":{"zeta":{"type":"string"},"alpha":{"type":"number"},"mid":{"type":"boolean"}}}`)
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, n.Properties.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}

	b, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"object","properties":{"zeta":{"type":"string"},"alpha":{"type":"number"},"mid":{"type":"boolean"}}}`
	if string(b) != want {
		t.Fatalf("round trip:\n got %s\nwant %s", b, want)
	}
}

func TestNode_YAMLKeepsPropertyOrder(t *testing.T) {
	src := `
type: object
required: [b]
properties:
  b:
    type: string
    maxLength: 4
  a:
    type: array
    items:
      type: number
      minimum: 1
`
	var n formskema.Node
	if err := yaml.Unmarshal([]byte(src), &n); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, n.Properties.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	a, _ := n.Properties.Get("a")
	if a.Items == nil || a.Items.Minimum == nil || *a.Items.Minimum != 1 {
		t.Fatalf("nested items not decoded: %+v", a)
	}
	if _, err := formskema.Compile(&n); err != nil {
		t.Fatalf("compile: %v", err)
	}
}

func TestProperties_SetKeepsPosition(t *testing.T) {
	p := formskema.NewProperties()
	p.Set("a", &formskema.Node{Type: formskema.KindString})
	p.Set("b", &formskema.Node{Type: formskema.KindString})
	p.Set("a", &formskema.Node{Type: formskema.KindNumber})
	if diff := cmp.Diff([]string{"a", "b"}, p.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	if n, _ := p.Get("a"); n.Type != formskema.KindNumber {
		t.Fatalf("replacement lost: %v", n.Type)
	}
	var nilProps *formskema.Properties
	if nilProps.Len() != 0 || nilProps.Keys() != nil {
		t.Fatalf("nil properties must behave as empty")
	}
}

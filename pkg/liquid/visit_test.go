package liquid

import (
	"errors"
	"testing"
)

type countingVisitor struct {
	text, object, other int
}

func (v *countingVisitor) Visit(n Node) error {
	switch n.(type) {
	case *TextNode:
		v.text++
	case *ObjectNode:
		v.object++
	default:
		v.other++
	}
	return nil
}

func TestWalkTemplate(t *testing.T) {
	tpl, err := Parse("A{{ x }}{% if a %}B{% capture c %}{{ y }}C{% endcapture %}{% endif %}")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	v := &countingVisitor{}
	if err := WalkTemplate(tpl, v); err != nil {
		t.Fatalf("walk error: %v", err)
	}
	if v.text != 3 || v.object != 2 || v.other != 2 {
		t.Fatalf("got text=%d object=%d other=%d", v.text, v.object, v.other)
	}
}

func TestTemplateBody(t *testing.T) {
	tpl, err := Parse("A{{ x }}{% if a %}b{% endif %}")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	nodes := tpl.Body().Nodes()
	if len(nodes) != 3 {
		t.Fatalf("got %d top-level nodes, want 3", len(nodes))
	}
	if _, ok := nodes[0].(*TextNode); !ok {
		t.Fatalf("node 0 is %T, want *TextNode", nodes[0])
	}
	if _, ok := nodes[1].(*ObjectNode); !ok {
		t.Fatalf("node 1 is %T, want *ObjectNode", nodes[1])
	}
}

type stopVisitor struct {
	seen int
}

func (v *stopVisitor) Visit(n Node) error {
	v.seen++
	if v.seen == 2 {
		return errors.New("stop")
	}
	return nil
}

func TestWalkStopsOnError(t *testing.T) {
	tpl, err := Parse("A{{ x }}B")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	v := &stopVisitor{}
	if err := WalkTemplate(tpl, v); err == nil {
		t.Fatal("expected error")
	}
	if v.seen != 2 {
		t.Fatalf("visited %d nodes, want 2", v.seen)
	}
}

func TestPretty(t *testing.T) {
	tpl, err := Parse(`{% assign n = 1 %}A{{ x.y }}{% if x %}B{% elsif y %}C{% else %}D{% endif %}{% unless z %}E{% endunless %}`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := `Assign n = 1
Text "A"
Object x.y
If x
  Text "B"
Elsif y
  Text "C"
Else
  Text "D"
Unless z
  Text "E"
`
	if got := Pretty(tpl); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyBlocks(t *testing.T) {
	tpl, err := Parse(`{% capture g %}{{ v }}{% endcapture %}{% comment %}hidden{% endcomment %}{% increment i %}{% decrement j %}`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := `Capture g
  Object v
Comment
  Text "hidden"
Increment i
Decrement j
`
	if got := Pretty(tpl); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

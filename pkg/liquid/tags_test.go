package liquid

import (
	"errors"
	"testing"
)

func TestAllTags(t *testing.T) {
	// One template through every entry in the dispatch table.
	src := `{% assign a = 1 %}{% capture c %}x{% endcapture %}{% comment %}y{% endcomment %}{% increment n %}{% decrement m %}{% if a %}i{% endif %}{% unless a %}u{% endunless %}`
	out := mustRender(t, src, Context{})
	if out != "0-1i" {
		t.Fatalf("got %q, want %q", out, "0-1i")
	}
}

func TestAssign(t *testing.T) {
	ctx := Context{}
	out := mustRender(t, `{% assign name = "conveyor" %}{{ name }}`, ctx)
	if out != "conveyor" {
		t.Fatalf("got %q, want %q", out, "conveyor")
	}
	// Assignments land in the caller's context.
	if !Equal(ctx["name"], StringValue("conveyor")) {
		t.Fatalf("context not updated: %v", ctx["name"])
	}
}

func TestAssignFromVariable(t *testing.T) {
	ctx := Context{"src": HashValue{"v": IntValue(3)}}
	out := mustRender(t, "{% assign n = src.v %}{{ n }}", ctx)
	if out != "3" {
		t.Fatalf("got %q, want %q", out, "3")
	}
}

func TestCapture(t *testing.T) {
	out := mustRender(t, "{% capture greeting %}Hello {{ who }}{% endcapture %}[{{ greeting }}]", Context{"who": StringValue("World")})
	if out != "[Hello World]" {
		t.Fatalf("got %q, want %q", out, "[Hello World]")
	}
}

func TestCaptureWithBlocks(t *testing.T) {
	src := "{% capture r %}<{% if ok %}yes{% else %}no{% endif %}>{% endcapture %}{{ r }}"
	out := mustRender(t, src, Context{"ok": BoolValue(true)})
	if out != "<yes>" {
		t.Fatalf("got %q, want %q", out, "<yes>")
	}
}

func TestComment(t *testing.T) {
	out := mustRender(t, "A{% comment %}ignored {{ x }} {% if y %}...{% endif %}{% endcomment %}B", Context{})
	if out != "AB" {
		t.Fatalf("got %q, want %q", out, "AB")
	}
}

func TestCommentParsesNestedBlocks(t *testing.T) {
	// The body is parsed, not skipped, so an if left open inside a comment
	// is still the if's fault.
	_, err := Parse("{% comment %}{% if a %}x{% endcomment %}")
	var untermErr *UnterminatedBlockError
	if !errors.As(err, &untermErr) {
		t.Fatalf("want UnterminatedBlockError, got %v", err)
	}
	if untermErr.Tag != "if" {
		t.Fatalf("want tag %q, got %q", "if", untermErr.Tag)
	}
}

func TestIncrement(t *testing.T) {
	out := mustRender(t, "{% increment c %}-{% increment c %}-{% increment c %}", Context{})
	if out != "0-1-2" {
		t.Fatalf("got %q, want %q", out, "0-1-2")
	}
}

func TestDecrement(t *testing.T) {
	out := mustRender(t, "{% decrement c %}-{% decrement c %}", Context{})
	if out != "-1--2" {
		t.Fatalf("got %q, want %q", out, "-1--2")
	}
}

func TestCounterStateVisible(t *testing.T) {
	ctx := Context{}
	out := mustRender(t, "{% increment c %}{% increment c %}{% decrement d %}{% decrement d %}", ctx)
	if out != "01-1-2" {
		t.Fatalf("got %q, want %q", out, "01-1-2")
	}
	if !Equal(ctx["c"], IntValue(2)) {
		t.Fatalf("c = %v, want 2", ctx["c"])
	}
	if !Equal(ctx["d"], IntValue(-2)) {
		t.Fatalf("d = %v, want -2", ctx["d"])
	}
}

func TestCounterSharesNamespace(t *testing.T) {
	// increment reads whatever assign left behind, and its update is
	// visible to plain lookups afterwards.
	out := mustRender(t, "{% assign c = 5 %}{% increment c %}:{{ c }}", Context{})
	if out != "5:6" {
		t.Fatalf("got %q, want %q", out, "5:6")
	}
}

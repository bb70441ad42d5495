package liquid

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func scanAll(t *testing.T, src string) []Component {
	t.Helper()
	tz := NewTokenizer(src)
	var out []Component
	for {
		c, err := tz.Next()
		if err != nil {
			t.Fatalf("scan error: %v", err)
		}
		if c == nil {
			return out
		}
		out = append(out, *c)
	}
}

func TestScanComponents(t *testing.T) {
	got := scanAll(t, "Hello {{ name }}!{% if a %}x{% endif %}")
	want := []Component{
		{Kind: ComponentText, Text: "Hello "},
		{Kind: ComponentObject, Text: "{{ name }}", InnerText: " name "},
		{Kind: ComponentText, Text: "!"},
		{Kind: ComponentTag, Text: "{% if a %}", InnerText: " if a "},
		{Kind: ComponentText, Text: "x"},
		{Kind: ComponentTag, Text: "{% endif %}", InnerText: " endif "},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("component mismatch (-want +got):\n%s", diff)
	}
}

func TestScanTextOnly(t *testing.T) {
	got := scanAll(t, "no markup here")
	want := []Component{{Kind: ComponentText, Text: "no markup here"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("component mismatch (-want +got):\n%s", diff)
	}
}

func TestScanBraceText(t *testing.T) {
	// Single braces and a lone opener at the end stay literal text.
	got := scanAll(t, "a { b } c {x")
	want := []Component{{Kind: ComponentText, Text: "a { b } c {x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("component mismatch (-want +got):\n%s", diff)
	}
}

func TestScanEmpty(t *testing.T) {
	if got := scanAll(t, ""); len(got) != 0 {
		t.Fatalf("got %d components, want none", len(got))
	}
}

func TestScanAdjacentMarkup(t *testing.T) {
	got := scanAll(t, "{{ a }}{{ b }}")
	want := []Component{
		{Kind: ComponentObject, Text: "{{ a }}", InnerText: " a "},
		{Kind: ComponentObject, Text: "{{ b }}", InnerText: " b "},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("component mismatch (-want +got):\n%s", diff)
	}
}

func TestScanUnterminated(t *testing.T) {
	tz := NewTokenizer("before {{ name")
	c, err := tz.Next()
	if err != nil {
		t.Fatalf("text component: %v", err)
	}
	if c.Kind != ComponentText || c.Text != "before " {
		t.Fatalf("got %+v, want leading text", c)
	}
	_, err = tz.Next()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unterminated object") {
		t.Fatalf("unexpected message: %v", err)
	}

	tz = NewTokenizer("{% if a")
	_, err = tz.Next()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "unterminated tag") {
		t.Fatalf("unexpected message: %v", err)
	}
}

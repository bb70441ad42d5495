package validator

import (
	"errors"
	"strings"
	"testing"
)

func TestAll(t *testing.T) {
	if err := All(nil, nil); err != nil {
		t.Fatalf("got %v", err)
	}
	boom := errors.New("boom")
	if err := All(nil, boom, errors.New("later")); err != boom {
		t.Fatalf("got %v, want first error", err)
	}
}

type fakeItem struct {
	name string
}

func (f fakeItem) Validate() error {
	return NotEmpty(f.name, "name")
}

func TestEach(t *testing.T) {
	if err := Each([]fakeItem{{"a"}, {"b"}}); err != nil {
		t.Fatalf("got %v", err)
	}
	err := Each([]fakeItem{{"a"}, {""}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "item 1:") {
		t.Fatalf("got %q, want item index", err)
	}
}

func TestNotEmpty(t *testing.T) {
	if err := NotEmpty("x", "field"); err != nil {
		t.Fatalf("got %v", err)
	}
	err := NotEmpty("", "field")
	if err == nil || !strings.Contains(err.Error(), "field must not be empty") {
		t.Fatalf("got %v", err)
	}
}

func TestNoDuplicates(t *testing.T) {
	if err := NoDuplicates([]string{"a", "b"}, "names"); err != nil {
		t.Fatalf("got %v", err)
	}
	err := NoDuplicates([]string{"a", "b", "a"}, "names")
	if err == nil || !strings.Contains(err.Error(), "duplicate value: a") {
		t.Fatalf("got %v", err)
	}
}

func TestNoTemplateMarkup(t *testing.T) {
	if err := NoTemplateMarkup("plain.liquid", "template_file"); err != nil {
		t.Fatalf("got %v", err)
	}
	if err := NoTemplateMarkup("", "template_file"); err != nil {
		t.Fatalf("empty field: %v", err)
	}
	for _, bad := range []string{"{{ name }}", "{% if a %}"} {
		if err := NoTemplateMarkup(bad, "template_file"); err == nil {
			t.Fatalf("accepted %q", bad)
		}
	}
}

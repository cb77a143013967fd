package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"j": JSONFormat, "json": JSONFormat, "y": YAMLFormat, "yaml": YAMLFormat, "yml": YAMLFormat,
	} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Errorf("%s: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%s: got %s want %s", in, got, want)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestFromSuffix(t *testing.T) {
	tests := map[string]Format{
		"a/b.json":     JSONFormat,
		"x.yaml":       YAMLFormat,
		"x.yml":        YAMLFormat,
		"noext":        YAMLFormat,
		"dir.json/foo": YAMLFormat,
		"x.txt":        YAMLFormat,
	}
	for name, want := range tests {
		if got := FromSuffix(name); got != want {
			t.Errorf("%s: got %s want %s", name, got, want)
		}
	}
}

package encode

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
)

// yamlString returns v as a YAML scalar, plain when that reads back as the
// same string and double quoted otherwise. Flow context also quotes flow
// indicators.
func yamlString(v string, flow bool) string {
	if !needsQuote(v, flow) {
		return v
	}
	d, err := json.Marshal(v)
	if err != nil {
		return strconv.Quote(v)
	}
	return string(d)
}

func needsQuote(v string, flow bool) bool {
	if v == "" || v != strings.TrimSpace(v) {
		return true
	}
	switch v[0] {
	case '-', '?', ':', ',', '[', ']', '{', '}', '#', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`', '.', '+':
		return true
	}
	if strings.Contains(v, ": ") || strings.Contains(v, " #") || strings.HasSuffix(v, ":") {
		return true
	}
	if flow && strings.ContainsAny(v, ",[]{}") {
		return true
	}
	for _, r := range v {
		if r == '\n' || r == '\t' || !unicode.IsPrint(r) {
			return true
		}
	}
	switch strings.ToLower(v) {
	case "null", "~", "true", "false", "yes", "no", "on", "off", "y", "n":
		return true
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseInt(v, 0, 64); err == nil {
		return true
	}
	return false
}

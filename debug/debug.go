package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Builder bool
	Script  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Builder = boolEnv("DOCBUILD_DEBUG_BUILDER")
	d.Script = boolEnv("DOCBUILD_DEBUG_SCRIPT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Builder() bool {
	return d.Builder
}

func Script() bool {
	return d.Script
}

// SetBuilder and SetScript override the environment, mainly for tests.
func SetBuilder(v bool) { d.Builder = v }
func SetScript(v bool)  { d.Script = v }

package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfoDefaults(t *testing.T) {
	v, c, d := Info()
	assert.Equal(t, "dev", v)
	assert.Equal(t, "unknown", c)
	assert.Equal(t, "unknown", d)
}

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "1.2.3"

	s := String()
	assert.Contains(t, s, "markscan 1.2.3")
	assert.Contains(t, s, "commit: unknown")
	assert.Contains(t, s, runtime.Version())
}

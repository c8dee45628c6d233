package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	l, ok := Lookup("vi")
	assert.True(t, ok)
	assert.Equal(t, "Vietnamese", l.Name)
	assert.Equal(t, "Tiếng Việt", l.NativeName)

	_, ok = Lookup("xx")
	assert.False(t, ok)
	assert.Equal(t, "xx", Name("xx"))
	assert.Equal(t, "日本語", NativeName("ja"))
}

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 68)
	assert.Equal(t, Auto, all[0].Code)

	all[0].Code = "changed"
	assert.Equal(t, Auto, All()[0].Code)

	seen := map[string]bool{}
	for _, l := range all[1:] {
		assert.False(t, seen[l.Code], l.Code)
		seen[l.Code] = true
	}
}

func TestIsTarget(t *testing.T) {
	assert.True(t, IsTarget("fr"))
	assert.False(t, IsTarget(Auto))
	assert.False(t, IsTarget(""))
}

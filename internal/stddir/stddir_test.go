package stddir

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoundTrip(t *testing.T) {
	for _, d := range All {
		t.Run(d.String(), func(t *testing.T) {
			got, ok := Parse(d.String())
			assert.True(t, ok)
			assert.Equal(t, d, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestParseRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"", "documents", "DOCUMENTS", "Document", ".config", "Unknown"} {
		_, ok := Parse(name)
		assert.False(t, ok, "name %q", name)
	}
}

func TestStringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", Dir(0).String())
	assert.Equal(t, "Unknown", Dir(99).String())
	assert.False(t, Dir(0).Valid())
}

func TestOrderMatchesNames(t *testing.T) {
	names := make([]string, 0, len(All))
	for i, d := range All {
		names = append(names, d.String())
		if i > 0 {
			assert.Less(t, All[i-1], d)
		}
	}
	assert.True(t, sort.StringsAreSorted(names))
	assert.Len(t, All, 8)
}

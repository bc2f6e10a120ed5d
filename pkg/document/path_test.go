package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	p := Path{1, 2, 3}

	assert.Equal(t, Path{1, 2}, p.Parent())
	assert.Equal(t, 3, p.Last())
	assert.Equal(t, Path{1, 2, 4}, p.Next())
	prev, ok := p.Previous()
	assert.True(t, ok)
	assert.Equal(t, Path{1, 2, 2}, prev)
	_, ok = Path{0}.Previous()
	assert.False(t, ok)
	assert.Equal(t, Path{1}, p.Slice(1))
	assert.Equal(t, p, p.Slice(10))
	assert.Equal(t, "1.2.3", p.String())

	next := p.Next()
	assert.Equal(t, Path{1, 2, 3}, p, "Next does not alias")
	assert.Equal(t, Path{1, 2, 4}, next)
}

func TestPath_Relations(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Path
		compare  int
		ancestor bool
		before   bool
		sibling  bool
	}{
		{"equal", Path{0, 1}, Path{0, 1}, 0, false, false, false},
		{"ancestor", Path{0}, Path{0, 1}, 0, true, false, false},
		{"before", Path{0, 1}, Path{0, 2}, -1, false, true, true},
		{"after", Path{1}, Path{0, 5}, 1, false, false, false},
		{"cousin", Path{0, 1}, Path{1, 0}, -1, false, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.compare, tc.a.Compare(tc.b))
			assert.Equal(t, tc.ancestor, tc.a.IsAncestorOf(tc.b))
			assert.Equal(t, tc.before, tc.a.IsBefore(tc.b))
			assert.Equal(t, tc.sibling, tc.a.IsSibling(tc.b))
		})
	}

	assert.True(t, Path{0, 1}.EndsBefore(Path{0, 2, 3}))
	assert.False(t, Path{0, 1}.EndsBefore(Path{1, 2}))
	assert.True(t, Path{0, 1}.EndsAt(Path{0, 1, 4}))
	assert.True(t, Path{0, 1, 4}.HasPrefix(Path{0, 1}))
}

func TestParsePath(t *testing.T) {
	p, err := ParsePath("0.12.3")
	require.NoError(t, err)
	assert.Equal(t, Path{0, 12, 3}, p)

	p, err = ParsePath("")
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = ParsePath("0.x")
	assert.Error(t, err)
	_, err = ParsePath("-1")
	assert.Error(t, err)
}

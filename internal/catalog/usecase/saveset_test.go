package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveSet_ToggleTwiceIsIdentity(t *testing.T) {
	s := NewSaveSet()

	assert.True(t, s.Toggle("p1"))
	assert.True(t, s.Contains("p1"))
	assert.False(t, s.Toggle("p1"))

	assert.False(t, s.Contains("p1"))
	assert.Zero(t, s.Len())
}

func TestSaveSet_IDsSorted(t *testing.T) {
	s := NewSaveSet()
	for _, id := range []string{"c", "a", "b", "a"} {
		s.Toggle(id)
	}
	assert.Equal(t, []string{"b", "c"}, s.IDs())
	assert.Equal(t, 2, s.Len())
}

func TestSaveSet_UnknownIDsAreAccepted(t *testing.T) {
	s := NewSaveSet()
	assert.True(t, s.Toggle("not-in-catalog"))
	assert.True(t, s.Contains("not-in-catalog"))
}

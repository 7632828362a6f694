package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickerNeverRepeatsImmediately(t *testing.T) {
	p := NewPicker([]string{"a", "b", "c"}, rand.NewSource(42))

	prev := p.Next()
	for i := 0; i < 200; i++ {
		next := p.Next()
		assert.NotEqual(t, prev, next)
		prev = next
	}
}

func TestPickerEdgeCases(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		p := NewPicker(nil, rand.NewSource(1))
		assert.Equal(t, "", p.Next())
	})

	t.Run("single element repeats", func(t *testing.T) {
		p := NewPicker([]string{"only"}, rand.NewSource(1))
		assert.Equal(t, "only", p.Next())
		assert.Equal(t, "only", p.Next())
	})
}

func TestPickerCoversAllItems(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	p := NewPicker(items, rand.NewSource(7))

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[p.Next()] = true
	}
	assert.Len(t, seen, len(items))
}

func TestBuiltinPools(t *testing.T) {
	assert.NotEmpty(t, FallbackGreetings)
	assert.NotEmpty(t, LoveReasons)
}

package mapper

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSlice(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))

	out := MapSlice[int, string](nil, strconv.Itoa)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestIndexBy(t *testing.T) {
	type item struct {
		code string
		n    int
	}
	got := IndexBy([]item{{"a", 1}, {"b", 2}, {"a", 3}}, func(i item) string { return i.code })
	assert.Len(t, got, 2)
	assert.Equal(t, 3, got["a"].n)
}

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetKeysSorted(t *testing.T) {
	m := map[int]string{3: "c", 1: "a", 2: "b"}
	assert.Equal(t, []int{1, 2, 3}, GetKeysSorted(m))
}

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(40, Clamp(10, 40, 79))
	assert.Equal(79, Clamp(120, 40, 79))
	assert.Equal(60, Clamp(60, 40, 79))
}

func TestSum(t *testing.T) {
	assert.Equal(t, uint64(6), Sum([]int{1, 2, 3}))
	assert.Equal(t, uint64(0), Sum[int](nil))
}

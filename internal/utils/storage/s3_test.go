package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInFolder(t *testing.T) {
	folder := PhotoFolder("u1")
	assert.Equal(t, "food-photos/u1", folder)

	assert.True(t, InFolder("food-photos/u1/a.jpg", folder))
	assert.False(t, InFolder("food-photos/u1", folder))
	assert.False(t, InFolder("food-photos/u10/a.jpg", folder))
	assert.False(t, InFolder("food-photos/u2/a.jpg", folder))
	assert.False(t, InFolder("food-photos/u1/../u2/a.jpg", folder))
	assert.False(t, InFolder("", folder))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBCNames(t *testing.T) {
	bc, err := ParseBCName(" Reflecting ")
	assert.NoError(t, err)
	assert.Equal(t, BCReflecting, bc)
	bc, err = ParseBCName("WALL")
	assert.NoError(t, err)
	assert.Equal(t, BCReflecting, bc)
	bc, err = ParseBCName("")
	assert.NoError(t, err)
	assert.Equal(t, BCOutflow, bc)
	_, err = ParseBCName("periodic")
	assert.Error(t, err)
	assert.Equal(t, "Outflow", BCOutflow.String())
	assert.Equal(t, "Left: Outflow, Right: Reflecting, Top: Outflow, Bottom: Outflow",
		Boundaries{Right: BCReflecting}.String())
	assert.Equal(t, BCReflecting, AllReflecting().Bottom)
}

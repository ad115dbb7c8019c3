package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputePolicy(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Second)

	p := ComputePolicy(now, &later)
	assert.Equal(t, StateAdmin, p.State)
	assert.ElementsMatch(t, []string{CapEdit, CapUpload, CapDelete}, p.Capabilities)
	assert.Equal(t, &later, p.ExpiresAt)

	p = ComputePolicy(now, &earlier)
	assert.Equal(t, StateAnonymous, p.State)
	assert.Empty(t, p.Capabilities)
	assert.Nil(t, p.ExpiresAt)

	p = ComputePolicy(now, nil)
	assert.Equal(t, StateAnonymous, p.State)
}

func TestStateAuthenticated(t *testing.T) {
	assert.True(t, StateAdmin.Authenticated())
	assert.False(t, StateAnonymous.Authenticated())
	assert.False(t, State("").Authenticated())
}

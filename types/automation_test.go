package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduleIndex_DeduplicatesNames(t *testing.T) {
	index := NewScheduleIndex()
	index.Add("SUC2", "SUC2_b")
	index.Add("SUC2", "SUC2_a")
	index.Add("SUC2", "SUC2_b")
	index.Add("SUC1", "SUC1_a")

	assert.Equal(t, []string{"SUC2_a", "SUC2_b"}, index.ScheduleNames("SUC2"))
	assert.Equal(t, 3, index.ScheduleCount())
	assert.Empty(t, index.ScheduleNames("missing"))
}

func TestConfigurationRegistry_FirstSeenWins(t *testing.T) {
	registry := NewConfigurationRegistry()

	assert.True(t, registry.Add("id-b", "SUC-B"))
	assert.True(t, registry.Add("id-a", "SUC-A"))
	assert.False(t, registry.Add("id-b", "other"))

	assert.Equal(t, "SUC-B", registry.Names["id-b"])
	assert.Equal(t, []string{"id-a", "id-b"}, registry.IDs())
	assert.Equal(t, 2, registry.Len())
}

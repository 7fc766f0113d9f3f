package diagnostic

import (
	"testing"

	"github.com/dukex/codeeasy/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector("node-1")
	assert.False(t, c.HasErrors())
	assert.False(t, c.HasWarnings())

	c.Warningf("name %q is short", "ab")
	assert.True(t, c.HasWarnings())
	assert.False(t, c.HasErrors())

	c.Errorf("missing %s", "connector")
	assert.True(t, c.HasErrors())

	got := c.Diagnostics()
	require.Len(t, got, 2)
	assert.Equal(t, `name "ab" is short`, got[0].Label)
	assert.Equal(t, models.SeverityWarning, got[0].Severity)
	assert.Equal(t, "node-1", got[1].SourceID)
	assert.Equal(t, models.SeverityError, got[1].Severity)
}

func TestGroup(t *testing.T) {
	t.Run("single diagnostic is not wrapped", func(t *testing.T) {
		single := []models.Diagnostic{{Label: "one", Severity: models.SeverityError}}
		assert.Equal(t, single, Group(single, "node-1", "parent"))
	})

	t.Run("empty stays empty", func(t *testing.T) {
		assert.Empty(t, Group(nil, "node-1", "parent"))
	})

	t.Run("many diagnostics are wrapped", func(t *testing.T) {
		many := []models.Diagnostic{
			{Label: "one", Severity: models.SeverityWarning},
			{Label: "two", Severity: models.SeverityError},
		}

		got := Group(many, "node-1", `Inconsistencies in flow item "x"`)
		require.Len(t, got, 3)

		parent := got[0]
		assert.Equal(t, GroupID("node-1"), parent.ID)
		assert.Equal(t, models.SeverityError, parent.Severity)
		assert.Empty(t, parent.GroupID)

		for _, child := range got[1:] {
			assert.Equal(t, parent.ID, child.GroupID)
		}

		assert.Empty(t, many[0].GroupID, "input must not be modified")
	})

	t.Run("group id is stable", func(t *testing.T) {
		assert.Equal(t, GroupID("a"), GroupID("a"))
		assert.NotEqual(t, GroupID("a"), GroupID("b"))
	})
}

func TestCountBySeverity(t *testing.T) {
	many := []models.Diagnostic{
		{Label: "one", Severity: models.SeverityWarning},
		{Label: "two", Severity: models.SeverityError},
	}

	grouped := append(Group(many, "n", "parent"), models.Diagnostic{Label: "three", Severity: models.SeverityError})

	errs, warnings := models.CountBySeverity(grouped)
	assert.Equal(t, 2, errs)
	assert.Equal(t, 1, warnings)
}

// Package persistencetest holds the behaviour every persistence backend must share.
package persistencetest

import (
	"testing"

	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/persistence"
	"github.com/dukex/codeeasy/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a backend returned by open. open is called once per subtest and must return an empty store.
func Run(t *testing.T, open func(t *testing.T) persistence.Persistence) {
	t.Helper()

	t.Run("save and load", func(t *testing.T) {
		store := open(t)
		project := testutil.CreateTestProject()
		project.ID = ""

		require.NoError(t, store.SaveProject(t.Context(), project))
		require.NotEmpty(t, project.ID)
		assert.False(t, project.CreatedAt.IsZero())

		loaded, err := store.ProjectByID(t.Context(), project.ID)
		require.NoError(t, err)

		assert.Equal(t, project.ID, loaded.ID)
		assert.Equal(t, project.Configuration.Label, loaded.Configuration.Label)
		require.Len(t, loaded.Tabs, len(project.Tabs))
		assert.Equal(t, project.Tabs[0].Items[0].ID, loaded.Tabs[0].Items[0].ID)
		assert.Equal(t, project.Tabs[0].Items[0].Items[0].Connections[0].TargetID, loaded.Tabs[0].Items[0].Items[0].Connections[0].TargetID)
		assert.True(t, project.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("update keeps creation time", func(t *testing.T) {
		store := open(t)
		project := testutil.CreateTestProject()

		require.NoError(t, store.SaveProject(t.Context(), project))
		created := project.CreatedAt

		project.Configuration.Label = "Renamed project"
		require.NoError(t, store.SaveProject(t.Context(), project))

		loaded, err := store.ProjectByID(t.Context(), project.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed project", loaded.Configuration.Label)
		assert.True(t, created.Equal(loaded.CreatedAt))
		assert.False(t, loaded.UpdatedAt.Before(created))

		all, err := store.Projects(t.Context())
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("missing project", func(t *testing.T) {
		store := open(t)

		_, err := store.ProjectByID(t.Context(), "00000000-0000-0000-0000-000000000000")

		assert.True(t, persistence.IsProjectNotFound(err))
	})

	t.Run("list", func(t *testing.T) {
		store := open(t)

		empty, err := store.Projects(t.Context())
		require.NoError(t, err)
		assert.Empty(t, empty)

		first := testutil.CreateTestProject()
		second := testutil.CreateTestProject()
		require.NoError(t, store.SaveProject(t.Context(), first))
		require.NoError(t, store.SaveProject(t.Context(), second))

		all, err := store.Projects(t.Context())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{first.ID, second.ID}, ids(all))
	})

	t.Run("delete", func(t *testing.T) {
		store := open(t)
		project := testutil.CreateTestProject()
		require.NoError(t, store.SaveProject(t.Context(), project))

		require.NoError(t, store.DeleteProject(t.Context(), project.ID))

		_, err := store.ProjectByID(t.Context(), project.ID)
		assert.True(t, persistence.IsProjectNotFound(err))

		err = store.DeleteProject(t.Context(), project.ID)
		assert.True(t, persistence.IsProjectNotFound(err))
	})

	t.Run("health check", func(t *testing.T) {
		store := open(t)

		assert.NoError(t, store.HealthCheck(t.Context()))
	})
}

func ids(projects []*models.Project) []string {
	result := make([]string, 0, len(projects))
	for _, p := range projects {
		result = append(result, p.ID)
	}

	return result
}

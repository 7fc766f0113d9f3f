package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/dukex/codeeasy/pkg/icons"
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/persistence/file"
	"github.com/dukex/codeeasy/pkg/services"
	"github.com/dukex/codeeasy/pkg/testutil"
	"github.com/dukex/codeeasy/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *services.Project) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	projectService := services.NewProject(logger, file.NewPersistence(t.TempDir()), nil, nil, nil)
	handlers := web.NewAPIHandlers(projectService, validator.New(validator.WithRequiredStructEnabled()))

	app := fiber.New()
	handlers.RegisterRoutes(app)

	return app, projectService
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body []byte) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, data
}

func seedProject(t *testing.T, service *services.Project, p *models.Project) *models.Project {
	t.Helper()

	result, err := service.Import(t.Context(), p)
	require.NoError(t, err)

	return result.Project
}

func TestAPIHandlers_CreateProject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		requestBody    string
		expectedStatus int
		validateResult func(t *testing.T, body []byte)
	}{
		{
			name:           "successful creation",
			requestBody:    `{"label":"Shop backend","description":"Orders and users","type":"api"}`,
			expectedStatus: http.StatusCreated,
			validateResult: func(t *testing.T, body []byte) {
				t.Helper()

				var response web.ProjectResponse
				require.NoError(t, json.Unmarshal(body, &response))

				assert.NotEmpty(t, response.Project.ID)
				assert.Equal(t, "Shop backend", response.Project.Configuration.Label)
				require.Len(t, response.Project.Tabs, 3)
				require.Len(t, response.Problems, 1)
				assert.Equal(t, "The project must have at least one route", response.Problems[0].Label)
				assert.Equal(t, icons.Error, response.Problems[0].Icon)
			},
		},
		{
			name:           "label too short",
			requestBody:    `{"label":"ab"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown project type",
			requestBody:    `{"label":"Shop backend","type":"desktop"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid json",
			requestBody:    `{"label":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app, _ := setupTestApp(t)

			status, body := doRequest(t, app, http.MethodPost, "/projects", []byte(tt.requestBody))
			assert.Equal(t, tt.expectedStatus, status, string(body))

			if tt.validateResult != nil {
				tt.validateResult(t, body)
			}
		})
	}
}

func TestAPIHandlers_GetProjects(t *testing.T) {
	t.Parallel()

	app, service := setupTestApp(t)
	seedProject(t, service, testutil.CreateTestProject())
	seedProject(t, service, testutil.CreateTestProject())

	status, body := doRequest(t, app, http.MethodGet, "/projects", nil)
	require.Equal(t, http.StatusOK, status)

	var response struct {
		Projects   []web.ProjectSummary `json:"projects"`
		TotalCount int                  `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(body, &response))

	assert.Equal(t, 2, response.TotalCount)
	assert.Equal(t, "Sample project", response.Projects[0].Label)
}

func TestAPIHandlers_GetProject(t *testing.T) {
	t.Parallel()

	app, service := setupTestApp(t)
	stored := seedProject(t, service, testutil.CreateTestProject())

	t.Run("existing project", func(t *testing.T) {
		t.Parallel()

		status, body := doRequest(t, app, http.MethodGet, "/projects/"+stored.ID, nil)
		require.Equal(t, http.StatusOK, status)

		var response web.ProjectResponse
		require.NoError(t, json.Unmarshal(body, &response))
		assert.Equal(t, stored.ID, response.Project.ID)
		assert.Empty(t, response.Problems)
	})

	t.Run("missing project", func(t *testing.T) {
		t.Parallel()

		status, body := doRequest(t, app, http.MethodGet, "/projects/does-not-exist", nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, string(body), "project_not_found")
	})
}

func TestAPIHandlers_UpdateProject(t *testing.T) {
	t.Parallel()

	app, service := setupTestApp(t)
	stored := seedProject(t, service, testutil.CreateTestProject())

	t.Run("replaces the tree and reports problems", func(t *testing.T) {
		t.Parallel()

		candidate := stored.Clone()
		candidate.ID = "ignored"
		candidate.TabByType(models.TabTypeRoutes).Items = []*models.TreeItem{}

		payload, err := json.Marshal(candidate)
		require.NoError(t, err)

		status, body := doRequest(t, app, http.MethodPut, "/projects/"+stored.ID, payload)
		require.Equal(t, http.StatusOK, status, string(body))

		var response web.ProjectResponse
		require.NoError(t, json.Unmarshal(body, &response))
		assert.Equal(t, stored.ID, response.Project.ID)
		require.Len(t, response.Problems, 1)
		assert.Equal(t, models.SeverityError, response.Problems[0].Severity)
	})

	t.Run("document without tabs", func(t *testing.T) {
		t.Parallel()

		status, body := doRequest(t, app, http.MethodPut, "/projects/"+stored.ID, []byte(`{"configuration":{}}`))
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Contains(t, string(body), "unparseable_project")
	})

	t.Run("missing project", func(t *testing.T) {
		t.Parallel()

		payload, err := json.Marshal(testutil.CreateTestProject())
		require.NoError(t, err)

		status, _ := doRequest(t, app, http.MethodPut, "/projects/does-not-exist", payload)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestAPIHandlers_DeleteProject(t *testing.T) {
	t.Parallel()

	app, service := setupTestApp(t)
	stored := seedProject(t, service, testutil.CreateTestProject())

	status, _ := doRequest(t, app, http.MethodDelete, "/projects/"+stored.ID, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = doRequest(t, app, http.MethodDelete, "/projects/"+stored.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPIHandlers_GetProblems(t *testing.T) {
	t.Parallel()

	app, service := setupTestApp(t)
	stored := seedProject(t, service, testutil.CreateTestProject(testutil.WithRoutes()))

	status, body := doRequest(t, app, http.MethodGet, "/projects/"+stored.ID+"/problems", nil)
	require.Equal(t, http.StatusOK, status)

	var problems []web.DiagnosticResponse
	require.NoError(t, json.Unmarshal(body, &problems))
	require.Len(t, problems, 1)
	assert.Equal(t, icons.Error, problems[0].Icon)
	assert.Empty(t, problems[0].SourceIcon)
}

func TestAPIHandlers_GetProblems_SourceIcon(t *testing.T) {
	t.Parallel()

	app, service := setupTestApp(t)

	unit := testutil.CreateTestUnit(testutil.WithLabel(""))
	testutil.WithName("")(unit.Items[1])
	stored := seedProject(t, service, testutil.CreateTestProject(testutil.WithActions(unit)))

	status, body := doRequest(t, app, http.MethodGet, "/projects/"+stored.ID+"/problems", nil)
	require.Equal(t, http.StatusOK, status)

	var problems []web.DiagnosticResponse
	require.NoError(t, json.Unmarshal(body, &problems))

	sourceIcons := make(map[string]string)
	for _, problem := range problems {
		sourceIcons[problem.Label] = problem.SourceIcon
	}

	assert.Equal(t, icons.For(string(models.ComponentTypeLocalAction)), sourceIcons["Field Label cannot be empty"])
	assert.Equal(t, icons.For(string(models.ItemTypeEnd)), sourceIcons["The name of a flow item cannot be empty"])
}

func TestAPIHandlers_GetUnit(t *testing.T) {
	t.Parallel()

	app, service := setupTestApp(t)

	healthy := testutil.CreateTestUnit(testutil.WithLabel("Create user"))
	unnamed := testutil.CreateTestUnit(testutil.WithLabel(""))
	stored := seedProject(t, service, testutil.CreateTestProject(testutil.WithActions(healthy, unnamed)))

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		validateResult func(t *testing.T, body []byte)
	}{
		{
			name:           "unit in any tab",
			target:         "/projects/" + stored.ID + "/units/" + healthy.ID,
			expectedStatus: http.StatusOK,
			validateResult: func(t *testing.T, body []byte) {
				var response web.UnitResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, healthy.ID, response.Unit.ID)
				assert.Equal(t, icons.For(string(models.ComponentTypeLocalAction)), response.Icon)
				assert.Empty(t, response.Problems)
			},
		},
		{
			name:           "unit problems only",
			target:         "/projects/" + stored.ID + "/units/" + unnamed.ID + "?tab=tabActions",
			expectedStatus: http.StatusOK,
			validateResult: func(t *testing.T, body []byte) {
				var response web.UnitResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response.Problems, 1)
				assert.Equal(t, "Field Label cannot be empty", response.Problems[0].Label)
			},
		},
		{
			name:           "unit in another tab",
			target:         "/projects/" + stored.ID + "/units/" + healthy.ID + "?tab=tabRoutes",
			expectedStatus: http.StatusNotFound,
			validateResult: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "unit_not_found")
			},
		},
		{
			name:           "unknown tab type",
			target:         "/projects/" + stored.ID + "/units/" + healthy.ID + "?tab=tabOther",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown unit",
			target:         "/projects/" + stored.ID + "/units/unknown",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown project",
			target:         "/projects/unknown/units/" + healthy.ID,
			expectedStatus: http.StatusNotFound,
			validateResult: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "project_not_found")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, http.MethodGet, tt.target, nil)
			require.Equal(t, tt.expectedStatus, status, string(body))

			if tt.validateResult != nil {
				tt.validateResult(t, body)
			}
		})
	}
}

func TestAPIHandlers_Windows(t *testing.T) {
	t.Parallel()

	app, service := setupTestApp(t)

	first := testutil.CreateTestUnit(testutil.WithLabel("Create user"), testutil.Editing())
	second := testutil.CreateTestUnit(testutil.WithLabel("Delete user"), testutil.Editing())
	stored := seedProject(t, service, testutil.CreateTestProject(testutil.WithActions(first, second)))

	status, body := doRequest(t, app, http.MethodGet, "/projects/"+stored.ID+"/windows", nil)
	require.Equal(t, http.StatusOK, status)

	var windows []models.OpenedWindow
	require.NoError(t, json.Unmarshal(body, &windows))
	require.Len(t, windows, 2)
	assert.Equal(t, "Delete user", windows[1].Title)
	assert.True(t, windows[1].IsSelected)

	status, body = doRequest(t, app, http.MethodPost, "/projects/"+stored.ID+"/windows/"+first.ID+"/select", nil)
	require.Equal(t, http.StatusOK, status, string(body))

	var selected web.ProjectResponse
	require.NoError(t, json.Unmarshal(body, &selected))
	assert.True(t, selected.Project.Windows[0].IsSelected)
	assert.False(t, selected.Project.Windows[1].IsSelected)
	assert.Equal(t, first.ID, selected.EditingUnitID)

	status, body = doRequest(t, app, http.MethodDelete, "/projects/"+stored.ID+"/windows/"+first.ID, nil)
	require.Equal(t, http.StatusOK, status, string(body))

	var removed web.ProjectResponse
	require.NoError(t, json.Unmarshal(body, &removed))
	require.Len(t, removed.Project.Windows, 1)
	assert.Equal(t, second.ID, removed.Project.Windows[0].ID)
	assert.True(t, removed.Project.Windows[0].IsSelected)
	assert.Equal(t, second.ID, removed.EditingUnitID)

	status, _ = doRequest(t, app, http.MethodDelete, "/projects/"+stored.ID+"/windows/unknown", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPIHandlers_HealthCheck(t *testing.T) {
	t.Parallel()

	app, _ := setupTestApp(t)

	status, body := doRequest(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "healthy")
}

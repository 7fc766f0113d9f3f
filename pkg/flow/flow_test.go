package flow_test

import (
	"strings"
	"testing"

	"github.com/dukex/codeeasy/pkg/defaults"
	"github.com/dukex/codeeasy/pkg/flow"
	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingConnector = "is missing a connector"

func countLabel(diagnostics []models.Diagnostic, fragment string) int {
	count := 0

	for _, d := range diagnostics {
		if strings.Contains(d.Label, fragment) {
			count++
		}
	}

	return count
}

func assigns(item *models.FlowItem) [][2]string {
	rows := make([][2]string, 0)
	for _, prop := range item.PropertiesByKind(models.PropertyKindAssigns) {
		rows = append(rows, [2]string{prop.Name, prop.Value})
	}

	return rows
}

func TestSynchronize_MissingConnector(t *testing.T) {
	provider := defaults.NewProvider()

	for _, itemType := range models.ItemTypes {
		t.Run(string(itemType), func(t *testing.T) {
			item := testutil.CreateTestFlowItem(
				testutil.WithType(itemType),
				testutil.WithName("valid"),
				testutil.WithoutConnections(),
			)

			_, diagnostics := flow.Synchronize(item, provider)

			if itemType == models.ItemTypeEnd || itemType == models.ItemTypeComment {
				assert.Zero(t, countLabel(diagnostics, missingConnector))
			} else {
				assert.Equal(t, 1, countLabel(diagnostics, missingConnector))
			}
		})
	}
}

func TestSynchronize_DoesNotModifyInput(t *testing.T) {
	item := testutil.CreateTestFlowItem(testutil.WithType(models.ItemTypeAssign))

	synced, _ := flow.Synchronize(item, defaults.NewProvider())

	assert.Empty(t, item.Properties)
	assert.NotEmpty(t, synced.Properties)
}

func TestSynchronize_DefaultsMissingItemID(t *testing.T) {
	item := testutil.CreateTestFlowItem(testutil.WithID(""))

	synced, _ := flow.Synchronize(item, defaults.NewProvider())

	assert.NotEmpty(t, synced.ID)
	assert.Empty(t, item.ID)

	again, _ := flow.Synchronize(synced, defaults.NewProvider())
	assert.Equal(t, synced.ID, again.ID)
}

func TestSynchronize_NameLength(t *testing.T) {
	provider := defaults.NewProvider()

	tests := []struct {
		name        string
		itemType    models.ItemType
		itemName    string
		wantError   bool
		wantWarning bool
	}{
		{name: "empty", itemType: models.ItemTypeStart, itemName: "", wantError: true},
		{name: "two characters", itemType: models.ItemTypeStart, itemName: "ab", wantWarning: true},
		{name: "three characters", itemType: models.ItemTypeStart, itemName: "abc"},
		{name: "twenty characters", itemType: models.ItemTypeStart, itemName: strings.Repeat("a", 20)},
		{name: "twenty one characters", itemType: models.ItemTypeStart, itemName: strings.Repeat("a", 21), wantWarning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := testutil.CreateTestFlowItem(testutil.WithType(tt.itemType), testutil.WithName(tt.itemName))

			synced, diagnostics := flow.Synchronize(item, provider)

			assert.Equal(t, tt.wantError, synced.HasError)
			assert.Equal(t, tt.wantWarning, synced.HasWarning)

			if !tt.wantError && !tt.wantWarning {
				assert.Empty(t, diagnostics)
			}

			label := synced.PropertyByKind(models.PropertyKindLabel)
			require.NotNil(t, label)
			assert.Equal(t, tt.wantError, label.ValueHasError)
			assert.Equal(t, tt.wantWarning, label.ValueHasWarning)
		})
	}
}

func TestSynchronize_CommentIsExemptFromUpperBound(t *testing.T) {
	item := testutil.CreateTestFlowItem(
		testutil.WithType(models.ItemTypeComment),
		testutil.WithoutConnections(),
		testutil.WithProperties(&models.Property{
			ID:    "comment-1",
			Name:  "Comment",
			Value: "This comment is clearly longer than twenty characters",
			Kind:  models.PropertyKindComment,
		}),
	)

	synced, diagnostics := flow.Synchronize(item, defaults.NewProvider())

	assert.Empty(t, diagnostics)
	assert.Equal(t, "This comment is clearly longer than twenty characters", synced.Name)
	assert.Equal(t, synced.Name, synced.PropertyByKind(models.PropertyKindLabel).Value)
	assert.True(t, synced.CanAddConnection)
}

func TestSynchronize_CommentPlaceholder(t *testing.T) {
	item := testutil.CreateTestFlowItem(testutil.WithType(models.ItemTypeComment), testutil.WithoutConnections())

	synced, _ := flow.Synchronize(item, defaults.NewProvider())

	assert.Equal(t, flow.CommentPlaceholder, synced.Name)
	assert.Equal(t, flow.CommentPlaceholder, synced.PropertyByKind(models.PropertyKindLabel).Value)
}

func TestSynchronize_LabelDrivesName(t *testing.T) {
	item := testutil.CreateTestFlowItem(testutil.WithProperties(&models.Property{
		ID:    "label-1",
		Name:  "Label",
		Value: "Início do fluxo",
		Kind:  models.PropertyKindLabel,
	}))

	synced, _ := flow.Synchronize(item, defaults.NewProvider())

	assert.Equal(t, "Iniciodofluxo", synced.Name)
	assert.Equal(t, "Início do fluxo", synced.Label)
}

func TestSynchronize_Assign(t *testing.T) {
	provider := defaults.NewProvider()

	t.Run("appends a blank row", func(t *testing.T) {
		item := testutil.CreateTestFlowItem(
			testutil.WithType(models.ItemTypeAssign),
			testutil.WithName("setX"),
			testutil.WithProperties(testutil.Assign("x", "1")),
		)

		synced, diagnostics := flow.Synchronize(item, provider)

		assert.Equal(t, [][2]string{{"x", "1"}, {"", ""}}, assigns(synced))
		assert.Empty(t, diagnostics)
	})

	t.Run("keeps only the last blank row", func(t *testing.T) {
		lastBlank := testutil.Assign("", "")

		item := testutil.CreateTestFlowItem(
			testutil.WithType(models.ItemTypeAssign),
			testutil.WithName("setX"),
			testutil.WithProperties(
				testutil.Assign("", ""),
				testutil.Assign("x", "1"),
				testutil.Assign("", ""),
				lastBlank,
			),
		)

		synced, _ := flow.Synchronize(item, provider)

		assert.Equal(t, [][2]string{{"x", "1"}, {"", ""}}, assigns(synced))

		rows := synced.PropertiesByKind(models.PropertyKindAssigns)
		assert.Equal(t, lastBlank.ID, rows[1].ID)
	})

	t.Run("half filled rows are errors", func(t *testing.T) {
		item := testutil.CreateTestFlowItem(
			testutil.WithType(models.ItemTypeAssign),
			testutil.WithName("setX"),
			testutil.WithProperties(testutil.Assign("x", ""), testutil.Assign("", "42")),
		)

		synced, diagnostics := flow.Synchronize(item, provider)

		assert.True(t, synced.HasError)
		assert.Equal(t, 1, countLabel(diagnostics, `no value is being assigned to "x"`))
		assert.Equal(t, 1, countLabel(diagnostics, `the value "42" is not being assigned`))

		rows := synced.PropertiesByKind(models.PropertyKindAssigns)
		assert.True(t, rows[0].ValueHasError)
		assert.False(t, rows[0].NameHasError)
		assert.True(t, rows[1].NameHasError)
	})
}

func TestSynchronize_AssignIgnoresRowsWithoutKind(t *testing.T) {
	free := &models.Property{ID: "free", Name: "x", Value: ""}

	item := testutil.CreateTestFlowItem(
		testutil.WithType(models.ItemTypeAssign),
		testutil.WithName("setX"),
		testutil.WithProperties(free),
	)

	synced, diagnostics := flow.Synchronize(item, defaults.NewProvider())

	assert.Equal(t, [][2]string{{"", ""}}, assigns(synced), "only assigns rows count as blank slots")
	assert.Empty(t, diagnostics, "rows without kind are not validated as assignments")

	var kept *models.Property

	for _, prop := range synced.Properties {
		if prop.ID == free.ID {
			kept = prop
		}
	}

	require.NotNil(t, kept)
	assert.Equal(t, "x", kept.Name)
	assert.Empty(t, kept.Kind)
	assert.False(t, kept.ValueHasError)
}

func TestSynchronize_If(t *testing.T) {
	provider := defaults.NewProvider()

	t.Run("two connections", func(t *testing.T) {
		item := testutil.CreateTestFlowItem(
			testutil.WithType(models.ItemTypeIf),
			testutil.WithName("check"),
			testutil.WithConnections("a", "b"),
			testutil.WithProperties(testutil.Condition("cond", "Condition", "x > 1")),
		)

		synced, diagnostics := flow.Synchronize(item, provider)

		require.Len(t, synced.Connections, 2)
		assert.Equal(t, flow.LabelTrue, synced.Connections[0].Label)
		assert.Equal(t, flow.LabelFalse, synced.Connections[1].Label)
		assert.False(t, synced.CanAddConnection)
		assert.Empty(t, diagnostics)
	})

	t.Run("one connection is missing a connector", func(t *testing.T) {
		item := testutil.CreateTestFlowItem(
			testutil.WithType(models.ItemTypeIf),
			testutil.WithName("check"),
			testutil.WithConnections("a"),
			testutil.WithProperties(testutil.Condition("cond", "Condition", "x > 1")),
		)

		synced, diagnostics := flow.Synchronize(item, provider)

		assert.True(t, synced.CanAddConnection)
		assert.Equal(t, 1, countLabel(diagnostics, missingConnector))
	})

	t.Run("empty condition and no connections", func(t *testing.T) {
		item := testutil.CreateTestFlowItem(
			testutil.WithType(models.ItemTypeIf),
			testutil.WithName("check"),
			testutil.WithoutConnections(),
			testutil.WithProperties(testutil.Condition("cond", "Condition", "")),
		)

		synced, diagnostics := flow.Synchronize(item, provider)

		assert.Equal(t, 1, countLabel(diagnostics, missingConnector))
		assert.Equal(t, 1, countLabel(diagnostics, "condition must have an informed expression"))
		assert.True(t, synced.PropertyByKind(models.PropertyKindCondition).ValueHasError)

		require.Len(t, diagnostics, 3, "two problems wrapped under one parent")
		assert.Equal(t, `Inconsistencies in flow item "check"`, diagnostics[0].Label)
		assert.Equal(t, diagnostics[0].ID, diagnostics[1].GroupID)
		assert.Equal(t, diagnostics[0].ID, diagnostics[2].GroupID)
	})
}

func TestSynchronize_Switch(t *testing.T) {
	provider := defaults.NewProvider()

	item := testutil.CreateTestFlowItem(
		testutil.WithType(models.ItemTypeSwitch),
		testutil.WithName("route"),
		testutil.WithConnections("a", "b", "c"),
	)

	synced, diagnostics := flow.Synchronize(item, provider)

	require.Len(t, synced.Connections, 3)
	assert.Equal(t, flow.LabelDefault, synced.Connections[0].Label)
	assert.Equal(t, "Condition1", synced.Connections[1].Label)
	assert.Equal(t, "Condition2", synced.Connections[2].Label)
	assert.True(t, synced.CanAddConnection)

	conditions := synced.PropertiesByKind(models.PropertyKindCondition)
	require.Len(t, conditions, 2)
	assert.Equal(t, synced.Connections[1].ID, conditions[0].ID)
	assert.Equal(t, synced.Connections[2].ID, conditions[1].ID)
	assert.Equal(t, 2, countLabel(diagnostics, "condition must have an informed expression"))

	t.Run("removing a connection drops its condition", func(t *testing.T) {
		for _, c := range conditions {
			c.Value = "x == 1"
		}

		shrunk := synced.Clone()
		shrunk.Connections = []*models.Connection{shrunk.Connections[0], shrunk.Connections[2]}

		resynced, diagnostics := flow.Synchronize(shrunk, provider)

		remaining := resynced.PropertiesByKind(models.PropertyKindCondition)
		require.Len(t, remaining, 1)
		assert.Equal(t, resynced.Connections[1].ID, remaining[0].ID)
		assert.Equal(t, "Condition1", remaining[0].Name)
		assert.Equal(t, "x == 1", remaining[0].Value)
		assert.Empty(t, diagnostics)
	})

	t.Run("duplicated connection ids get their own condition", func(t *testing.T) {
		dup := testutil.CreateTestFlowItem(
			testutil.WithType(models.ItemTypeSwitch),
			testutil.WithName("route"),
			testutil.WithConnections("x", "y", "z"),
		)
		dup.Connections[0].ID = "a"
		dup.Connections[1].ID = "b"
		dup.Connections[2].ID = "b"

		resynced, _ := flow.Synchronize(dup, provider)

		require.Len(t, resynced.Connections, 3)
		assert.Equal(t, "b", resynced.Connections[1].ID)
		assert.NotEqual(t, "b", resynced.Connections[2].ID)
		assert.Equal(t, "b", dup.Connections[2].ID, "input is not modified")

		conditions := resynced.PropertiesByKind(models.PropertyKindCondition)
		require.Len(t, conditions, 2)
		assert.Equal(t, resynced.Connections[1].ID, conditions[0].ID)
		assert.Equal(t, resynced.Connections[2].ID, conditions[1].ID)

		again, _ := flow.Synchronize(resynced, provider)
		assert.Equal(t, resynced, again)
	})

	t.Run("no connections means no conditions", func(t *testing.T) {
		empty := synced.Clone()
		empty.Connections = []*models.Connection{}

		resynced, _ := flow.Synchronize(empty, provider)
		assert.Empty(t, resynced.PropertiesByKind(models.PropertyKindCondition))
	})
}

func TestSynchronize_Foreach(t *testing.T) {
	item := testutil.CreateTestFlowItem(
		testutil.WithType(models.ItemTypeForeach),
		testutil.WithName("loop"),
		testutil.WithConnections("body"),
	)

	synced, _ := flow.Synchronize(item, defaults.NewProvider())

	assert.Equal(t, flow.LabelCycle, synced.Connections[0].Label)
	assert.True(t, synced.CanAddConnection)

	item.Connections = append(item.Connections, &models.Connection{ID: "after", TargetID: "next"})
	synced, _ = flow.Synchronize(item, defaults.NewProvider())

	assert.Equal(t, flow.LabelCycle, synced.Connections[0].Label)
	assert.False(t, synced.CanAddConnection)
}

func TestSynchronize_Action(t *testing.T) {
	provider := defaults.NewProvider()

	item := testutil.CreateTestFlowItem(testutil.WithType(models.ItemTypeAction), testutil.WithName("callApi"))

	synced, diagnostics := flow.Synchronize(item, provider)

	assert.Equal(t, 1, countLabel(diagnostics, `must have a valid value in the "Action" field`))
	assert.True(t, synced.PropertyByKind(models.PropertyKindAction).ValueHasError)
	assert.False(t, synced.PropertyByKind(models.PropertyKindLabel).EditValueDisabled)
	assert.False(t, synced.CanAddConnection)

	synced.PropertyByKind(models.PropertyKindAction).Value = "action-id"

	resynced, diagnostics := flow.Synchronize(synced, provider)

	assert.Empty(t, diagnostics)
	assert.True(t, resynced.PropertyByKind(models.PropertyKindLabel).EditValueDisabled)
}

func TestSynchronize_StartAndEnd(t *testing.T) {
	provider := defaults.NewProvider()

	start, _ := flow.Synchronize(testutil.CreateTestFlowItem(testutil.WithoutConnections()), provider)
	assert.True(t, start.CanAddConnection)

	start, _ = flow.Synchronize(testutil.CreateTestFlowItem(), provider)
	assert.False(t, start.CanAddConnection)

	end, diagnostics := flow.Synchronize(testutil.CreateTestFlowItem(
		testutil.WithType(models.ItemTypeEnd),
		testutil.WithName("finish"),
		testutil.WithoutConnections(),
	), provider)
	assert.False(t, end.CanAddConnection)
	assert.Empty(t, diagnostics)
}

func TestSynchronize_Idempotent(t *testing.T) {
	provider := defaults.NewProvider()

	items := []*models.FlowItem{
		testutil.CreateTestFlowItem(testutil.WithType(models.ItemTypeAssign), testutil.WithProperties(testutil.Assign("", ""), testutil.Assign("", ""))),
		testutil.CreateTestFlowItem(testutil.WithType(models.ItemTypeIf), testutil.WithConnections("a")),
		testutil.CreateTestFlowItem(testutil.WithType(models.ItemTypeSwitch), testutil.WithConnections("a", "b", "c")),
		testutil.CreateTestFlowItem(testutil.WithType(models.ItemTypeForeach), testutil.WithConnections("a", "b")),
		testutil.CreateTestFlowItem(testutil.WithType(models.ItemTypeComment)),
		testutil.CreateTestFlowItem(testutil.WithType(models.ItemTypeAction), testutil.WithName("x")),
		testutil.CreateTestFlowItem(testutil.WithType(models.ItemType("UNKNOWN"))),
	}

	for _, item := range items {
		t.Run(string(item.Type), func(t *testing.T) {
			once, firstProblems := flow.Synchronize(item, provider)
			twice, secondProblems := flow.Synchronize(once, provider)

			assert.Equal(t, once, twice)
			assert.Equal(t, firstProblems, secondProblems)
		})
	}
}

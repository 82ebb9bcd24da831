// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistryFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	path := writeRegistryFile(t, `{
		"version": "1.0.0",
		"lastUpdated": "2026-03-01T00:00:00Z",
		"activities": [
			{"id": "propose-interview", "displayName": "Propose Interview", "taskType": "propose-interview", "category": "recruitment"}
		]
	}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, reg.Activities, 1)
	assert.Equal(t, "propose-interview", reg.Activities[0].ID)

	activity, ok := reg.FindByTaskType("propose-interview")
	require.True(t, ok)
	assert.Equal(t, "Propose Interview", activity.DisplayName)

	_, ok = reg.FindByTaskType("unknown-task")
	assert.False(t, ok)
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestValidateInput(t *testing.T) {
	activity := &Activity{
		TaskType: "propose-interview",
		InputSchema: map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"applicationId", "dates"},
			"properties": map[string]interface{}{
				"applicationId": map[string]interface{}{"type": "string"},
				"dates": map[string]interface{}{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]interface{}{"type": "string"},
				},
			},
		},
	}

	err := activity.ValidateInput(map[string]interface{}{
		"applicationId": "app-1",
		"dates":         []interface{}{"2026-03-10"},
	})
	assert.NoError(t, err)

	err = activity.ValidateInput(map[string]interface{}{"applicationId": "app-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dates")

	err = activity.ValidateInput(map[string]interface{}{
		"applicationId": "app-1",
		"dates":         []interface{}{},
	})
	assert.Error(t, err)
}

func TestValidateWithoutSchemaAcceptsAnything(t *testing.T) {
	activity := &Activity{TaskType: "reconcile-applications"}
	assert.NoError(t, activity.ValidateInput(map[string]interface{}{"whatever": true}))
	assert.NoError(t, activity.ValidateOutput(nil))
}

func TestThrowsErrorCode(t *testing.T) {
	activity := &Activity{
		TaskType:   "propose-interview",
		ErrorCodes: []string{"APPLICATION_NOT_FOUND", "INVALID_STATUS_TRANSITION"},
	}

	assert.True(t, activity.ThrowsErrorCode("INVALID_STATUS_TRANSITION"))
	assert.False(t, activity.ThrowsErrorCode("SEARCH_QUERY_FAILED"))
}

package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"task-cli/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeJSON(&out, sampleTasks()))

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 2)

	assert.Equal(t, "11111111-aaaa-4bbb-8ccc-dddddddddddd", records[0]["id"])
	assert.Equal(t, "2024-05-01", records[0]["due"])
	assert.Equal(t, "critical", records[0]["urgency"])
	assert.Equal(t, "2024-05-01T09:00:00Z", records[0]["created_at"])
	assert.Nil(t, records[0]["completed_at"])
	assert.Nil(t, records[0]["hide_until"])

	assert.Nil(t, records[1]["due"])
	assert.NotContains(t, records[1], "urgency")
	assert.NotContains(t, records[1], "tag")
	assert.Equal(t, "2024-05-05T18:00:00Z", records[1]["completed_at"])
}

func TestWriteJSON_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeJSON(&out, nil))
	assert.Equal(t, "[]\n", out.String())
}

func TestWriteYAML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeYAML(&out, sampleTasks()))

	var records []taskRecord
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Pay rent", records[0].Title)
	assert.Equal(t, "home", records[0].Tag)
	require.NotNil(t, records[1].HideUntil)
	assert.Equal(t, "2024-06-01", *records[1].HideUntil)
	assert.Contains(t, out.String(), "  title: Pay rent")
}

func TestWriteCSV(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeCSV(&out, sampleTasks()))

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"id", "title", "due", "status", "urgency", "tag", "hide_until", "created_at", "completed_at"}, rows[0])
	assert.Equal(t, []string{
		"11111111-aaaa-4bbb-8ccc-dddddddddddd", "Pay rent", "2024-05-01", "pending", "critical", "home", "", "2024-05-01T09:00:00Z", "",
	}, rows[1])
	assert.Equal(t, "Write, then send, report", rows[2][1])
	assert.Equal(t, "2024-06-01", rows[2][6])
}

func TestApp_WriteTasksUnknownFormat(t *testing.T) {
	app := &App{config: config.NewConfig(), errorHandler: NewErrorHandler()}

	var out bytes.Buffer
	err := app.writeTasks(&out, "xml", sampleTasks(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
	assert.Empty(t, out.String())
}

package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"task-cli/internal/config"
	"task-cli/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleTasks() []*domain.Task {
	completed := time.Date(2024, 5, 5, 18, 0, 0, 0, time.UTC)
	return []*domain.Task{
		{
			ID:        "11111111-aaaa-4bbb-8ccc-dddddddddddd",
			CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			Title:     "Pay rent",
			Due:       strPtr("2024-05-01"),
			Status:    domain.StatusPending,
			Urgency:   domain.UrgencyCritical,
			Tag:       "home",
		},
		{
			ID:          "22222222-aaaa-4bbb-8ccc-dddddddddddd",
			CreatedAt:   time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
			Title:       "Write, then send, report",
			Status:      domain.StatusDone,
			CompletedAt: &completed,
			HideUntil:   strPtr("2024-06-01"),
		},
	}
}

func plainRenderer(out *bytes.Buffer, display config.DisplayConfig) *Renderer {
	return NewRenderer(out, false, "2024-05-06", display)
}

func TestRenderer_Tasks(t *testing.T) {
	var out bytes.Buffer
	r := plainRenderer(&out, config.NewConfig().Display)

	require.NoError(t, r.Tasks(sampleTasks(), false))

	rendered := out.String()
	assert.True(t, strings.HasPrefix(rendered, "\n"))
	assert.True(t, strings.HasSuffix(rendered, "\n\n"))
	for _, want := range []string{"ID", "Title", "Due Date", "Status", "Urgency", "Tag", "11111111", "Pay rent", "2024-05-01", "critical", "home", "done", "╔"} {
		assert.Contains(t, rendered, want)
	}
	assert.NotContains(t, rendered, "Hide Until")
	assert.NotContains(t, rendered, "11111111-aaaa", "only the short id is shown")
	assert.NotContains(t, rendered, "\x1b[")
}

func TestRenderer_TasksShowHidden(t *testing.T) {
	var out bytes.Buffer
	r := plainRenderer(&out, config.NewConfig().Display)

	require.NoError(t, r.Tasks(sampleTasks(), true))
	assert.Contains(t, out.String(), "Hide Until")
	assert.Contains(t, out.String(), "2024-06-01")
}

func TestRenderer_Empty(t *testing.T) {
	var out bytes.Buffer
	r := plainRenderer(&out, config.NewConfig().Display)

	require.NoError(t, r.Tasks(nil, false))
	assert.Equal(t, "No tasks found.\n", out.String())
}

func TestRenderer_DateFormatAndTitleWidth(t *testing.T) {
	var out bytes.Buffer
	r := plainRenderer(&out, config.DisplayConfig{DateFormat: "02/01/2006", TitleWidth: 12})

	require.NoError(t, r.Tasks(sampleTasks(), false))
	assert.Contains(t, out.String(), "01/05/2024")
	assert.Contains(t, out.String(), "Write, th...")
	assert.NotContains(t, out.String(), "send")
}

func TestRenderer_ColorProfile(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, true, "2024-05-06", config.NewConfig().Display)

	require.NoError(t, r.Tasks(sampleTasks(), false))
	assert.Contains(t, out.String(), "\x1b[")
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.False(t, ColorEnabled(&buf, false))
	assert.False(t, ColorEnabled(&buf, true), "a buffer is not a terminal")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout, true))
}

func TestFormatDate(t *testing.T) {
	r := &Renderer{dateFormat: "Jan 2, 2006"}

	assert.Equal(t, "-", r.formatDate(nil))
	assert.Equal(t, "May 7, 2024", r.formatDate(strPtr("2024-05-07")))
	assert.Equal(t, "garbage", r.formatDate(strPtr("garbage")))

	r.dateFormat = ""
	assert.Equal(t, "2024-05-07", r.formatDate(strPtr("2024-05-07")))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"héllo wörld", 8, "héllo..."},
		{"abcdef", 3, "abc"},
		{"unlimited", 0, "unlimited"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.input, tt.width), "truncate(%q, %d)", tt.input, tt.width)
	}
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "work", orDash("work"))
}

package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"task-cli/internal/config"
	"task-cli/internal/dates"
	"task-cli/internal/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorEnabled reports whether ANSI styling should be written to out.
// NO_COLOR, TERM=dumb and non-terminal writers all disable it.
func ColorEnabled(out io.Writer, want bool) bool {
	if !want {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Renderer draws task tables. It never filters or reorders rows.
type Renderer struct {
	out        io.Writer
	lg         *lipgloss.Renderer
	today      string
	dateFormat string
	titleWidth int

	header   lipgloss.Style
	cell     lipgloss.Style
	border   lipgloss.Style
	id       lipgloss.Style
	overdue  lipgloss.Style
	critical lipgloss.Style
	urgency  lipgloss.Style
	status   map[domain.Status]lipgloss.Style
	notice   lipgloss.Style
}

// NewRenderer creates a renderer for out. today is the YYYY-MM-DD date
// overdue emphasis is computed against.
func NewRenderer(out io.Writer, color bool, today string, display config.DisplayConfig) *Renderer {
	lg := lipgloss.NewRenderer(out)
	if color {
		lg.SetColorProfile(termenv.ANSI256)
	} else {
		lg.SetColorProfile(termenv.Ascii)
	}

	cell := lg.NewStyle().Padding(0, 1)
	return &Renderer{
		out:        out,
		lg:         lg,
		today:      today,
		dateFormat: display.DateFormat,
		titleWidth: display.TitleWidth,

		header:   cell.Bold(true).Foreground(lipgloss.Color("15")).Align(lipgloss.Center),
		cell:     cell,
		border:   lg.NewStyle().Foreground(lipgloss.Color("7")),
		id:       cell.Faint(true),
		overdue:  cell.Foreground(lipgloss.Color("9")).Bold(true),
		critical: cell.Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15")).Bold(true),
		urgency:  cell.Foreground(lipgloss.Color("11")),
		status: map[domain.Status]lipgloss.Style{
			domain.StatusPending: cell.Foreground(lipgloss.Color("9")).Bold(true),
			domain.StatusDoing:   cell.Foreground(lipgloss.Color("11")).Bold(true),
			domain.StatusDone:    cell.Foreground(lipgloss.Color("10")).Bold(true),
		},
		notice: lg.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

const (
	colID = iota
	colTitle
	colDue
	colStatus
	colUrgency
	colTag
	colHideUntil
)

// Tasks renders tasks as a table. showHidden adds the Hide Until column.
func (r *Renderer) Tasks(tasks []*domain.Task, showHidden bool) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(r.out, r.notice.Render("No tasks found."))
		return err
	}

	headers := []string{"ID", "Title", "Due Date", "Status", "Urgency", "Tag"}
	if showHidden {
		headers = append(headers, "Hide Until")
	}

	rows := make([][]string, len(tasks))
	for i, task := range tasks {
		row := []string{
			task.ShortID(),
			truncate(task.Title, r.titleWidth),
			r.formatDate(task.Due),
			string(task.Status),
			orDash(task.Urgency),
			orDash(task.Tag),
		}
		if showHidden {
			row = append(row, r.formatDate(task.HideUntil))
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.DoubleBorder()).
		BorderStyle(r.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cellStyle(tasks[row], col)
		})

	_, err := fmt.Fprintf(r.out, "\n%s\n\n", t.Render())
	return err
}

func (r *Renderer) cellStyle(task *domain.Task, col int) lipgloss.Style {
	switch col {
	case colID:
		return r.id
	case colDue:
		if task.IsOverdue(r.today) {
			return r.overdue.Align(lipgloss.Center)
		}
	case colStatus:
		if style, ok := r.status[task.Status]; ok {
			return style.Align(lipgloss.Center)
		}
	case colUrgency:
		if task.IsCritical() {
			return r.critical.Align(lipgloss.Center)
		}
		if task.Urgency != "" {
			return r.urgency.Align(lipgloss.Center)
		}
	case colTitle:
		return r.cell
	}
	return r.cell.Align(lipgloss.Center)
}

// formatDate renders a stored YYYY-MM-DD date in the configured layout
func (r *Renderer) formatDate(d *string) string {
	if d == nil {
		return "-"
	}
	t, err := time.Parse(dates.Layout, *d)
	if err != nil || r.dateFormat == "" {
		return *d
	}
	return t.Format(r.dateFormat)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

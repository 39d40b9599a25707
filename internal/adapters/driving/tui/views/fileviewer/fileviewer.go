// Package fileviewer provides the file content overlay for the TUI.
package fileviewer

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driving"
)

// View is a scrollable overlay showing the content of a single file.
// Slow responses for files the user has already navigated away from
// are discarded by comparing resolve generations.
type View struct {
	styles  *styles.Styles
	content driving.ContentService

	snapshot *domain.RepositorySnapshot
	path     string

	text         string
	lines        []string
	scrollOffset int
	loading      bool

	// seq numbers the viewer's own resolve requests. The resolver is
	// shared with the assistant's prompt building, so its process-wide
	// generation cannot tell the viewer's newest request apart from an
	// unrelated resolve.
	seq uint64

	width  int
	height int
}

// NewView creates a new file viewer.
func NewView(s *styles.Styles, content driving.ContentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		content: content,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetFile targets the viewer at a file and starts loading its content.
func (v *View) SetFile(snap *domain.RepositorySnapshot, path string) tea.Cmd {
	v.snapshot = snap
	v.path = path
	v.text = ""
	v.lines = nil
	v.scrollOffset = 0
	v.loading = true
	v.seq++
	return v.loadContent(snap, path, v.seq)
}

// loadContent returns a command that resolves the file content and
// stamps the result with the viewer request sequence.
func (v *View) loadContent(snap *domain.RepositorySnapshot, path string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		text, _ := v.content.Resolve(context.Background(), snap, path)
		return messages.FileContentLoaded{
			Path:       path,
			Content:    text,
			Generation: seq,
		}
	}
}

// Update handles messages for the file viewer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.wrapContent()
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.FileContentLoaded:
		// A newer viewer request has been issued since this one
		// started; showing it would display the wrong file.
		if msg.Generation != v.seq {
			return v, nil
		}
		v.loading = false
		v.text = msg.Content
		v.scrollOffset = 0
		v.wrapContent()
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset -= v.visibleLines()
		if v.scrollOffset < 0 {
			v.scrollOffset = 0
		}
	case "pgdown", "ctrl+d":
		v.scrollOffset += v.visibleLines()
		if max := v.maxScrollOffset(); v.scrollOffset > max {
			v.scrollOffset = max
		}
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "esc", "q":
		return v, func() tea.Msg {
			return messages.ViewerClosed{}
		}
	}

	return v, nil
}

// wrapContent wraps the content to fit the view width.
func (v *View) wrapContent() {
	if v.text == "" {
		v.lines = nil
		return
	}

	contentWidth := v.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	rawLines := strings.Split(v.text, "\n")
	v.lines = make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		// Wrap on rune boundaries; a byte split can cut a multi-byte
		// character in half.
		runes := []rune(line)
		for len(runes) > contentWidth {
			v.lines = append(v.lines, string(runes[:contentWidth]))
			runes = runes[contentWidth:]
		}
		v.lines = append(v.lines, string(runes))
	}
}

// visibleLines returns the number of content lines that fit.
func (v *View) visibleLines() int {
	reserved := 6
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	max := len(v.lines) - v.visibleLines()
	if max < 0 {
		max = 0
	}
	return max
}

// View renders the file viewer.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.path))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 72)))
	b.WriteString("\n\n")

	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading content..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(Empty file)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.styles.Normal.Render(v.lines[i]))
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString("\n")
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage,
			v.scrollOffset+1,
			minInt(v.scrollOffset+visible, len(v.lines)),
			len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] close")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.wrapContent()
}

// Path returns the displayed file path.
func (v *View) Path() string {
	return v.path
}

// Content returns the displayed text.
func (v *View) Content() string {
	return v.text
}

// Loading reports whether a resolve is in flight.
func (v *View) Loading() bool {
	return v.loading
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Package filetree provides the repository file explorer view for the TUI.
package filetree

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
)

// row is a single rendered line of the tree.
type row struct {
	path  string
	name  string
	depth int
	isDir bool
}

// View is the expandable file tree with fuzzy path filtering.
type View struct {
	styles *styles.Styles

	root     *domain.DirectoryTreeNode
	blobs    []string
	expanded map[string]bool

	rows   []row
	cursor int

	filtering   bool
	filterInput textinput.Model

	width  int
	height int
}

// NewView creates a new file tree view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	fi := textinput.New()
	fi.Placeholder = "filter files..."
	fi.CharLimit = 128
	fi.Width = 40

	return &View{
		styles:      s,
		expanded:    make(map[string]bool),
		filterInput: fi,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetSnapshot loads a fetched snapshot into the tree. Expansion state
// and filter are reset; top-level directories start collapsed.
func (v *View) SetSnapshot(snap *domain.RepositorySnapshot) {
	if snap == nil {
		v.root = nil
		v.blobs = nil
	} else {
		v.root = domain.BuildDirectoryTree(snap.Entries)
		v.blobs = snap.BlobPaths()
	}
	v.expanded = make(map[string]bool)
	v.cursor = 0
	v.filtering = false
	v.filterInput.Reset()
	v.rebuildRows()
}

// Update handles messages for the file tree view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if v.filtering {
		return v.updateFiltering(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
	case "/":
		v.filtering = true
		v.filterInput.Reset()
		v.rebuildRows()
		return v, v.filterInput.Focus()
	case "enter", " ":
		return v, v.activate()
	}

	return v, nil
}

// updateFiltering handles keys while the filter input is focused.
func (v *View) updateFiltering(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.filtering = false
		v.filterInput.Blur()
		v.filterInput.Reset()
		v.cursor = 0
		v.rebuildRows()
		return v, nil
	case "up", "ctrl+k":
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil
	case "down", "ctrl+j":
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
		return v, nil
	case "enter":
		return v, v.activate()
	}

	var cmd tea.Cmd
	v.filterInput, cmd = v.filterInput.Update(msg)
	v.cursor = 0
	v.rebuildRows()
	return v, cmd
}

// activate opens the row under the cursor: directories toggle their
// expansion, blobs emit a selection message.
func (v *View) activate() tea.Cmd {
	if v.cursor >= len(v.rows) {
		return nil
	}
	r := v.rows[v.cursor]

	if r.isDir {
		v.expanded[r.path] = !v.expanded[r.path]
		v.rebuildRows()
		if v.cursor >= len(v.rows) {
			v.cursor = len(v.rows) - 1
		}
		return nil
	}

	path := r.path
	return func() tea.Msg {
		return messages.FileSelected{Path: path}
	}
}

// rebuildRows recomputes the visible rows from the tree, the expansion
// state and the active filter.
func (v *View) rebuildRows() {
	v.rows = v.rows[:0]
	if v.root == nil {
		return
	}

	if v.filtering && strings.TrimSpace(v.filterInput.Value()) != "" {
		for _, m := range fuzzy.Find(v.filterInput.Value(), v.blobs) {
			v.rows = append(v.rows, row{path: m.Str, name: m.Str})
		}
		return
	}

	v.appendChildren(v.root, "", 0)
}

func (v *View) appendChildren(node *domain.DirectoryTreeNode, prefix string, depth int) {
	for _, name := range node.SortedChildren() {
		child := node.Children[name]
		path := name
		if prefix != "" {
			path = prefix + "/" + name
		}
		v.rows = append(v.rows, row{path: path, name: name, depth: depth, isDir: child.IsDir()})
		if child.IsDir() && v.expanded[path] {
			v.appendChildren(child, path, depth+1)
		}
	}
}

// View renders the file tree view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Files"))
	b.WriteString("\n\n")

	if v.filtering {
		b.WriteString(v.styles.InputField.Render(v.filterInput.View()))
		b.WriteString("\n\n")
	}

	if v.root == nil || len(v.root.Children) == 0 {
		b.WriteString(v.styles.Muted.Render("No files found in the default branch."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if len(v.rows) == 0 {
		b.WriteString(v.styles.Muted.Render("No files match the filter."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleRows()
	start := v.scrollStart(visible)
	for i := start; i < len(v.rows) && i < start+visible; i++ {
		b.WriteString(v.renderRow(v.rows[i], i == v.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderRow(r row, selected bool) string {
	indent := strings.Repeat("  ", r.depth)

	marker := "  "
	if r.isDir {
		if v.expanded[r.path] {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	line := indent + marker + r.name
	if r.isDir {
		line += "/"
	}

	if selected {
		return v.styles.Selected.Render(line)
	}
	if r.isDir {
		return v.styles.Subtitle.Render(line)
	}
	return v.styles.Normal.Render(line)
}

func (v *View) renderHelp() string {
	if v.filtering {
		return v.styles.Help.Render("[↑/↓] move  [enter] open  [esc] clear filter")
	}
	return v.styles.Help.Render("[↑/↓] move  [enter] open/expand  [/] filter")
}

// visibleRows returns how many tree rows fit in the viewport.
func (v *View) visibleRows() int {
	reserved := 6
	if v.filtering {
		reserved += 4
	}
	available := v.height - reserved
	if available < 1 {
		available = 1
	}
	return available
}

// scrollStart keeps the cursor inside the viewport.
func (v *View) scrollStart(visible int) int {
	if v.cursor < visible {
		return 0
	}
	return v.cursor - visible + 1
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Rows returns the currently visible rows' paths, for tests.
func (v *View) Rows() []string {
	paths := make([]string, len(v.rows))
	for i, r := range v.rows {
		paths[i] = r.path
	}
	return paths
}

// Cursor returns the cursor index.
func (v *View) Cursor() int {
	return v.cursor
}

// Filtering reports whether the filter input is active.
func (v *View) Filtering() bool {
	return v.filtering
}

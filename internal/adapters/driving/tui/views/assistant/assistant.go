// Package assistant provides the AI assistant view for the TUI: API key
// entry, context file selection and a chat transcript.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/repoviz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/repoviz-cli/internal/core/domain"
	"github.com/custodia-labs/repoviz-cli/internal/core/ports/driving"
)

// mode identifies which sub-screen of the assistant is shown.
type mode int

const (
	modeKey mode = iota
	modeChat
)

// focus identifies the active pane within the chat screen.
type focus int

const (
	focusQuestion focus = iota
	focusFiles
)

// View is the assistant tab. Without a stored API key it shows a key
// entry form; with one it shows the file picker and chat transcript.
type View struct {
	styles    *styles.Styles
	assistant driving.AssistantService

	snapshot *domain.RepositorySnapshot
	blobs    []string

	mode  mode
	focus focus

	keyInput      textinput.Model
	questionInput textinput.Model
	filterInput   textinput.Model
	filtering     bool

	fileCursor int
	// selected keeps the checked paths in the order the user checked
	// them; the prompt concatenates context files in that order.
	selected []string

	asking bool
	saving bool
	err    error

	width  int
	height int
}

// NewView creates a new assistant view.
func NewView(s *styles.Styles, assistant driving.AssistantService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ki := textinput.New()
	ki.Placeholder = "Gemini API key"
	ki.EchoMode = textinput.EchoPassword
	ki.CharLimit = 255
	ki.Width = 50

	qi := textinput.New()
	qi.Placeholder = "Ask about this repository..."
	qi.CharLimit = 512
	qi.Width = 60

	fi := textinput.New()
	fi.Placeholder = "filter files..."
	fi.CharLimit = 128
	fi.Width = 40

	return &View{
		styles:        s,
		assistant:     assistant,
		keyInput:      ki,
		questionInput: qi,
		filterInput:   fi,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// SetSnapshot loads a snapshot and resets the chat context selection.
func (v *View) SetSnapshot(snap *domain.RepositorySnapshot) tea.Cmd {
	v.snapshot = snap
	if snap == nil {
		v.blobs = nil
	} else {
		v.blobs = snap.BlobPaths()
	}
	v.selected = nil
	v.fileCursor = 0
	v.err = nil

	if v.assistant.KeyConfigured() {
		v.mode = modeChat
		v.focus = focusQuestion
		return v.questionInput.Focus()
	}
	v.mode = modeKey
	return v.keyInput.Focus()
}

// Update handles messages for the assistant view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.mode == modeKey {
			return v.updateKeyEntry(msg)
		}
		return v.updateChat(msg)

	case messages.AssistantKeySaved:
		v.saving = false
		if msg.Err != nil {
			v.err = msg.Err
			v.keyInput.Reset()
			return v, nil
		}
		v.err = nil
		v.mode = modeChat
		v.focus = focusQuestion
		return v, v.questionInput.Focus()

	case messages.AssistantReplied:
		v.asking = false
		if msg.Err != nil && errors.Is(msg.Err, domain.ErrAssistantKeyInvalid) {
			// The stored key was rejected and cleared; fall back to
			// key entry so the user can supply a fresh one.
			v.mode = modeKey
			v.err = msg.Err
			return v, v.keyInput.Focus()
		}
		return v, nil
	}

	return v, nil
}

// updateKeyEntry handles keys on the key entry screen.
func (v *View) updateKeyEntry(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEnter && !v.saving {
		apiKey := strings.TrimSpace(v.keyInput.Value())
		if apiKey == "" {
			return v, nil
		}
		v.saving = true
		v.err = nil
		return v, v.saveKey(apiKey)
	}

	var cmd tea.Cmd
	v.keyInput, cmd = v.keyInput.Update(msg)
	return v, cmd
}

// saveKey returns a command that validates and persists the API key.
func (v *View) saveKey(apiKey string) tea.Cmd {
	return func() tea.Msg {
		err := v.assistant.SaveKey(context.Background(), apiKey)
		return messages.AssistantKeySaved{Err: err}
	}
}

// updateChat handles keys on the chat screen.
func (v *View) updateChat(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.filtering {
		return v.updateFiltering(msg)
	}

	if msg.String() == "ctrl+f" {
		return v, v.switchFocus()
	}

	if v.focus == focusFiles {
		switch msg.String() {
		case "up", "k":
			if v.fileCursor > 0 {
				v.fileCursor--
			}
		case "down", "j":
			if v.fileCursor < len(v.visibleBlobs())-1 {
				v.fileCursor++
			}
		case " ", "enter":
			visible := v.visibleBlobs()
			if v.fileCursor < len(visible) {
				v.toggleSelected(visible[v.fileCursor])
			}
		case "/":
			v.filtering = true
			v.filterInput.Reset()
			return v, v.filterInput.Focus()
		}
		return v, nil
	}

	if msg.Type == tea.KeyEnter && !v.asking {
		question := strings.TrimSpace(v.questionInput.Value())
		if question == "" {
			return v, nil
		}
		v.asking = true
		v.questionInput.Reset()
		return v, v.ask(question)
	}

	var cmd tea.Cmd
	v.questionInput, cmd = v.questionInput.Update(msg)
	return v, cmd
}

// updateFiltering handles keys while the file filter input is focused.
func (v *View) updateFiltering(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		v.filtering = false
		v.filterInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.filterInput, cmd = v.filterInput.Update(msg)
	v.fileCursor = 0
	return v, cmd
}

// switchFocus toggles between the question input and the file picker.
func (v *View) switchFocus() tea.Cmd {
	if v.focus == focusQuestion {
		v.focus = focusFiles
		v.questionInput.Blur()
		return nil
	}
	v.focus = focusQuestion
	return v.questionInput.Focus()
}

// toggleSelected checks or unchecks a path, keeping selection order.
func (v *View) toggleSelected(path string) {
	for i, p := range v.selected {
		if p == path {
			v.selected = append(v.selected[:i], v.selected[i+1:]...)
			return
		}
	}
	v.selected = append(v.selected, path)
}

// isSelected reports whether a path is currently checked.
func (v *View) isSelected(path string) bool {
	for _, p := range v.selected {
		if p == path {
			return true
		}
	}
	return false
}

// ask returns a command that sends the question with the selected
// context files, in the order the user checked them.
func (v *View) ask(question string) tea.Cmd {
	paths := make([]string, len(v.selected))
	copy(paths, v.selected)
	snap := v.snapshot
	return func() tea.Msg {
		reply, err := v.assistant.Ask(context.Background(), snap, paths, question)
		return messages.AssistantReplied{Reply: reply, Err: err}
	}
}

// visibleBlobs returns blob paths matching the active filter.
func (v *View) visibleBlobs() []string {
	query := strings.TrimSpace(v.filterInput.Value())
	if query == "" {
		return v.blobs
	}
	matches := fuzzy.Find(query, v.blobs)
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = m.Str
	}
	return paths
}

// View renders the assistant view.
func (v *View) View() string {
	if v.mode == modeKey {
		return v.viewKeyEntry()
	}
	return v.viewChat()
}

// viewKeyEntry renders the API key entry screen.
func (v *View) viewKeyEntry() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Assistant"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("Enter a Gemini API key to enable the assistant:"))
	b.WriteString("\n")
	b.WriteString(v.styles.InputField.Render(v.keyInput.View()))
	b.WriteString("\n\n")

	if v.saving {
		b.WriteString(v.styles.Muted.Render("Validating key..."))
		b.WriteString("\n")
	} else if v.err != nil {
		b.WriteString(v.styles.Error.Render("Key rejected: " + v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] save key"))
	return b.String()
}

// viewChat renders the file picker, transcript and question input.
func (v *View) viewChat() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Assistant"))
	b.WriteString("\n\n")

	v.renderFilePicker(&b)
	v.renderTranscript(&b)

	if v.asking {
		b.WriteString(v.styles.Muted.Render("Thinking..."))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.InputField.Render(v.questionInput.View()))
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderFilePicker(b *strings.Builder) {
	label := "Context files"
	if n := len(v.selected); n > 0 {
		label = fmt.Sprintf("Context files (%d selected)", n)
	}
	if v.focus == focusFiles {
		b.WriteString(v.styles.Title.Render(label))
	} else {
		b.WriteString(v.styles.Muted.Render(label))
	}
	b.WriteString("\n")

	if v.filtering || strings.TrimSpace(v.filterInput.Value()) != "" {
		b.WriteString(v.styles.InputField.Render(v.filterInput.View()))
		b.WriteString("\n")
	}

	if v.focus == focusFiles {
		visible := v.visibleBlobs()
		shown := minInt(len(visible), v.pickerRows())
		start := 0
		if v.fileCursor >= shown {
			start = v.fileCursor - shown + 1
		}
		for i := start; i < len(visible) && i < start+shown; i++ {
			check := "[ ]"
			if v.isSelected(visible[i]) {
				check = "[x]"
			}
			line := check + " " + visible[i]
			if i == v.fileCursor {
				b.WriteString(v.styles.Selected.Render(line))
			} else {
				b.WriteString(v.styles.Normal.Render(line))
			}
			b.WriteString("\n")
		}
		if len(visible) == 0 {
			b.WriteString(v.styles.Muted.Render("  (no matching files)"))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}

func (v *View) renderTranscript(b *strings.Builder) {
	transcript := v.assistant.Transcript()
	if len(transcript) == 0 {
		b.WriteString(v.styles.Muted.Render("Select context files, then ask a question."))
		b.WriteString("\n\n")
		return
	}

	// Show the tail of the transcript that fits.
	start := 0
	if len(transcript) > 6 {
		start = len(transcript) - 6
	}
	for _, m := range transcript[start:] {
		if m.Role == domain.RoleUser {
			b.WriteString(v.styles.Title.Render("You: "))
			b.WriteString(v.styles.Normal.Render(m.Text))
			b.WriteString("\n")
			continue
		}
		b.WriteString(v.styles.Subtitle.Render("Assistant:"))
		b.WriteString("\n")
		b.WriteString(renderMarkdown(m.Text, v.width))
	}
	b.WriteString("\n")
}

// renderMarkdown renders assistant replies as terminal markdown,
// falling back to the raw text when rendering fails.
func renderMarkdown(text string, width int) string {
	wrap := width - 4
	if wrap < 40 {
		wrap = 40
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return text + "\n"
	}
	out, err := r.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

func (v *View) renderHelp() string {
	if v.focus == focusFiles {
		return v.styles.Help.Render("[↑/↓] move  [space] toggle  [/] filter  [ctrl+f] question")
	}
	return v.styles.Help.Render("[enter] ask  [ctrl+f] context files")
}

// pickerRows returns how many file rows the picker shows at once.
func (v *View) pickerRows() int {
	rows := v.height / 3
	if rows < 5 {
		rows = 5
	}
	return rows
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// KeyEntryActive reports whether the key entry screen is active.
func (v *View) KeyEntryActive() bool {
	return v.mode == modeKey
}

// SelectedPaths returns the checked context file paths in the order
// they were checked.
func (v *View) SelectedPaths() []string {
	paths := make([]string, len(v.selected))
	copy(paths, v.selected)
	return paths
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

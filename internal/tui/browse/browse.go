// Package browse provides the interactive catalog browser.
package browse

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leefowlercu/icns-extractor/internal/catalog"
	"github.com/leefowlercu/icns-extractor/internal/tui/styles"
)

// Result holds the outcome of a browse session.
type Result struct {
	// Item is the chosen catalog item when Selected is true.
	Item catalog.Item
	// Selected indicates whether the user picked an item.
	Selected bool
	// Cancelled indicates whether the user quit without choosing.
	Cancelled bool
}

// item adapts catalog.Item to list.DefaultItem.
type item struct {
	catalog.Item
}

func (i item) Title() string       { return i.Item.Title }
func (i item) Description() string { return fmt.Sprintf("%s · %s", i.Type.Title(), i.Ref) }
func (i item) FilterValue() string { return i.Item.Title }

var removeKey = key.NewBinding(
	key.WithKeys("d", "delete"),
	key.WithHelp("d", "remove"),
)

// Model is the bubbletea model for the catalog browser.
type Model struct {
	catalog   *catalog.Catalog
	list      list.Model
	selected  *catalog.Item
	cancelled bool
	quitting  bool
}

// NewModel creates a browser over cat, grouped by type and sorted by title.
// Items removed in the browser are removed from cat.
func NewModel(cat *catalog.Catalog) Model {
	l := list.New(listItems(cat), list.NewDefaultDelegate(), 0, 0)
	l.Title = listTitle(cat)
	l.Styles.Title = styles.ListTitle
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	// d is taken by removeKey.
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown", "f")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{removeKey} }
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	slog.Debug("creating browse model", "item_count", cat.Len())

	return Model{catalog: cat, list: l}
}

func listItems(cat *catalog.Catalog) []list.Item {
	var out []list.Item
	for _, section := range cat.Sections() {
		for _, it := range section.Items {
			out = append(out, item{Item: it})
		}
	}
	return out
}

func listTitle(cat *catalog.Catalog) string {
	return fmt.Sprintf("Icons (%d)", cat.Len())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := styles.Container.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.cancel()
		}

		filtering := m.list.FilterState() == list.Filtering
		if !filtering && key.Matches(msg, removeKey) {
			return m.removeSelected()
		}

		switch msg.String() {
		case "q":
			if !filtering {
				return m.cancel()
			}
		case "esc":
			if m.list.FilterState() == list.Unfiltered {
				return m.cancel()
			}
		case "enter":
			if !filtering {
				return m.choose()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		if m.cancelled {
			return styles.MutedText.Render("Cancelled.") + "\n"
		}
		return ""
	}
	return styles.Container.Render(m.list.View())
}

// Result returns the outcome after the program exits.
func (m Model) Result() Result {
	if m.selected != nil {
		return Result{Item: *m.selected, Selected: true}
	}
	return Result{Cancelled: m.cancelled}
}

func (m Model) choose() (tea.Model, tea.Cmd) {
	sel, ok := m.list.SelectedItem().(item)
	if !ok {
		return m, nil
	}
	chosen, ok := m.catalog.Find(sel.ID)
	if !ok {
		return m, nil
	}

	m.selected = &chosen
	m.quitting = true
	slog.Debug("catalog item selected", "title", chosen.Title)
	return m, tea.Quit
}

func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	sel, ok := m.list.SelectedItem().(item)
	if !ok {
		return m, nil
	}
	if !m.catalog.Remove(sel.ID) {
		return m, nil
	}
	slog.Debug("catalog item removed", "title", sel.Item.Title)

	cursor := m.list.Index()
	cmd := m.list.SetItems(listItems(m.catalog))
	m.list.Title = listTitle(m.catalog)
	if n := len(m.list.VisibleItems()); n > 0 && cursor >= n {
		m.list.Select(n - 1)
	}

	return m, tea.Batch(cmd, m.list.NewStatusMessage(fmt.Sprintf("Removed %s", sel.Item.Title)))
}

func (m Model) cancel() (tea.Model, tea.Cmd) {
	slog.Debug("browse cancelled")
	m.cancelled = true
	m.quitting = true
	return m, tea.Quit
}

// Run shows the browser full-screen over cat and returns the user's choice.
func Run(cat *catalog.Catalog) (Result, error) {
	p := tea.NewProgram(NewModel(cat), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("failed to run browser; %w", err)
	}

	if m, ok := finalModel.(Model); ok {
		return m.Result(), nil
	}

	return Result{}, nil
}

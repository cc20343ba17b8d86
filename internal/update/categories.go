package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleCategoriesKey(msg tea.KeyMsg) Model {
	if m.Registry == nil {
		return m
	}

	if m.Categories.InputMode != CategoryInputNone {
		switch msg.String() {
		case "esc":
			m.Categories.InputMode = CategoryInputNone
			m.quickAddInput.Blur()
			m.quickAddInput.SetValue("")
			return m
		case "enter":
			m.submitCategoryInput(m.quickAddInput.Value())
			m.quickAddInput.SetValue("")
			return m
		}
		if msg.Type == tea.KeyRunes {
			m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
			return m
		}
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		_ = cmd
		return m
	}

	switch msg.String() {
	case "up", "k":
		if m.Categories.Cursor > 0 {
			m.Categories.Cursor--
		}
	case "down", "j":
		if m.Categories.Cursor < len(m.Categories.Names)-1 {
			m.Categories.Cursor++
		}
	case "a":
		m.Categories.InputMode = CategoryInputAdd
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "new category name, enter to add", IsError: false}
	case "r":
		if name, ok := m.selectedCategory(); ok {
			m.Categories.InputMode = CategoryInputRename
			m.quickAddInput.Focus()
			m.quickAddInput.SetValue(name)
			m.Status = StatusBar{Text: fmt.Sprintf("renaming %s, enter to apply", name), IsError: false}
		}
	case "x", "d":
		if name, ok := m.selectedCategory(); ok {
			if m.Registry.Delete(m.ctx(), name) {
				m.reloadCategories()
				m.Status = StatusBar{Text: fmt.Sprintf("category deleted: %s", name), IsError: false}
			}
		}
	}
	return m
}

func (m *Model) submitCategoryInput(value string) {
	mode := m.Categories.InputMode
	m.Categories.InputMode = CategoryInputNone
	m.quickAddInput.Blur()

	switch mode {
	case CategoryInputAdd:
		if m.Registry.Add(m.ctx(), value) {
			m.reloadCategories()
			m.Status = StatusBar{Text: fmt.Sprintf("category added: %s", value), IsError: false}
			return
		}
		m.Status = StatusBar{Text: "category rejected: blank or duplicate name", IsError: true}
	case CategoryInputRename:
		name, ok := m.selectedCategory()
		if !ok {
			return
		}
		if m.Registry.Rename(m.ctx(), name, value) {
			m.reloadCategories()
			m.Status = StatusBar{Text: fmt.Sprintf("category renamed: %s", value), IsError: false}
			return
		}
		m.Status = StatusBar{Text: "rename rejected: blank, duplicate or unchanged name", IsError: true}
	}
}

func (m Model) selectedCategory() (string, bool) {
	if len(m.Categories.Names) == 0 {
		return "", false
	}
	if m.Categories.Cursor < 0 || m.Categories.Cursor >= len(m.Categories.Names) {
		return "", false
	}
	return m.Categories.Names[m.Categories.Cursor], true
}

func (m *Model) reloadCategories() {
	if m.Registry == nil {
		return
	}
	m.Categories.Names = m.Registry.List()
	if m.Categories.Cursor >= len(m.Categories.Names) && m.Categories.Cursor > 0 {
		m.Categories.Cursor--
	}
}

func (m *Model) ensureCategoriesState() {
	if m.Categories.Cursor < 0 {
		m.Categories.Cursor = 0
	}
	if m.Categories.Cursor >= len(m.Categories.Names) && len(m.Categories.Names) > 0 {
		m.Categories.Cursor = len(m.Categories.Names) - 1
	}
}

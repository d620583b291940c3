package grid

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the table's keybindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	SortLeft  key.Binding
	SortRight key.Binding
	Sort      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Select    key.Binding
	View      key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Add       key.Binding
	Filter    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		SortLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev column")),
		SortRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next column")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		NextPage:  key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev page")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		View:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
}

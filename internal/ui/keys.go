package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"actionboard/internal/config"
)

type keyMap struct {
	Quit        key.Binding
	Add         key.Binding
	Delete      key.Binding
	Submit      key.Binding
	Next        key.Binding
	Prev        key.Binding
	MeetingType key.Binding
	Copy        key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:        binding(k.Quit, "quit"),
		Add:         binding(k.Add, "add task"),
		Delete:      binding(k.Delete, "delete row"),
		Submit:      binding(k.Submit, "save all"),
		Next:        binding(k.Next, "next field"),
		Prev:        binding(k.Prev, "prev field"),
		MeetingType: binding(k.MeetingType, "meeting type"),
		Copy:        binding(k.Copy, "copy payload"),
		Confirm:     binding(k.Confirm, "confirm"),
		Cancel:      binding(k.Cancel, "cancel"),
	}
}

func binding(list, desc string) key.Binding {
	keys := splitKeys(list)
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), desc))
}

// splitKeys turns "tab, down" into ["tab", "down"]. A lone " " is the space key.
func splitKeys(list string) []string {
	if list == " " {
		return []string{" "}
	}
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Delete, k.Submit, k.MeetingType, k.Copy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.MeetingType},
		{k.Add, k.Delete, k.Copy},
		{k.Submit, k.Quit},
	}
}

func (k keyMap) modalHelp() []key.Binding {
	return []key.Binding{k.Next, k.Confirm, k.Cancel}
}

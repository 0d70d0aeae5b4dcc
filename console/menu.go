package console

import (
	"strconv"
	"strings"
)

// Action identifies one menu entry.
type Action int

const (
	ActionUnknown Action = iota
	ActionList
	ActionCreate
	ActionStart
	ActionStop
	ActionTerminate
	ActionTag
	ActionListTags
	ActionExit
)

// menuEntry pairs an action with its pt-BR label.
type menuEntry struct {
	action Action
	label  string
}

// menuEntries is the fixed closed set of actions, in display order.
var menuEntries = []menuEntry{
	{ActionList, "Listar Instâncias"},
	{ActionCreate, "Criar Instância"},
	{ActionStart, "Iniciar Instância"},
	{ActionStop, "Parar Instância"},
	{ActionTerminate, "Encerrar Instância"},
	{ActionTag, "Marcar Tags"},
	{ActionListTags, "Listar Tags"},
	{ActionExit, "Sair"},
}

// parseSelection maps the operator's answer onto an action. Answers
// match by menu number or by label, case-insensitively.
func parseSelection(input string) Action {
	input = strings.TrimSpace(input)

	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(menuEntries) {
			return menuEntries[n-1].action
		}
		return ActionUnknown
	}

	for _, entry := range menuEntries {
		if strings.EqualFold(entry.label, input) {
			return entry.action
		}
	}
	return ActionUnknown
}

// needsInstanceID reports whether the action prompts for an instance id
// before dispatching.
func (a Action) needsInstanceID() bool {
	switch a {
	case ActionStart, ActionStop, ActionTerminate, ActionTag, ActionListTags:
		return true
	}
	return false
}

package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

type uiState struct {
	CurrentView    string `json:"current_view"`
	SelectedTaskID string `json:"selected_task_id"`
	StatsPeriod    string `json:"stats_period"`
}

func (m *Model) persistUIState() error {
	if strings.TrimSpace(m.stateFilePath) == "" {
		return nil
	}
	dir := filepath.Dir(m.stateFilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	state := uiState{
		CurrentView:    string(m.CurrentView),
		SelectedTaskID: m.SelectedTaskID,
	}
	if m.Stats != nil {
		state.StatsPeriod = string(m.Stats.Period())
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.stateFilePath + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, m.stateFilePath)
}

func loadUIState(path string) (uiState, error) {
	var state uiState
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return state, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return state, nil
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return state, err
	}
	return state, nil
}

package tui

import tea "github.com/charmbracelet/bubbletea"

func keyCtrlX() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyCtrlX} }

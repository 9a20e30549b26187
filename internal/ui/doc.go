// Package ui contains the Bubble Tea program behind every pman view.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry so key presses, resizes and
//     handoff results are handled by focused functions.
//   - Key presses become action.Action values through action.KeyMap. While a
//     dialog is open it sees every action first; otherwise list primitives
//     (query edits, cursor moves, escape) are applied to the active screen's
//     list and anything else goes to the screen itself.
//   - A screen answers with a step: a domain action to perform, a dialog to
//     open or a notice for the status line. Domain actions run synchronously
//     against the collaborators in effects.go.
//
// State ownership:
//   - Each screen wraps an internal/ui/state.List, which tracks the candidate
//     set, the query, the filtered order, the cursor and the viewport.
//   - Switching views builds a fresh screen, so the previous query and cursor
//     are discarded.
//
// Collaborators:
//   - SessionManager, VersionControl and EditorBridge are satisfied by
//     internal/tmux, internal/git and internal/nvim. Tests substitute fakes.
//   - fzf and delta run through tea.ExecProcess, which hands them the
//     terminal and returns a message when they exit.
package ui

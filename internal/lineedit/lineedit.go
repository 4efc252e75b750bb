// Package lineedit implements the LineEditor capability spec.md treats
// as an external collaborator, backed by a real terminal line editor
// with persistent history.
package lineedit

import (
	"io"
	"os"

	"github.com/chzyer/readline"
)

// Editor is the capability the REPL loop reads lines from: readline plus
// explicit history load/save, matching the shape of the source's
// rustyline wrapper.
type Editor interface {
	ReadLine(prompt string) (string, error)
	AddHistoryEntry(line string) error
	LoadHistory(path string) error
	SaveHistory(path string) error
	ClearHistory() error
}

// terminalEditor is the concrete, process-facing Editor.
type terminalEditor struct {
	inst        *readline.Instance
	historyFile string
}

// New opens a readline-backed Editor with the given prompt and history
// file.
func New(prompt, historyFile string) (Editor, error) {
	inst, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: historyFile,
	})
	if err != nil {
		return nil, err
	}
	return &terminalEditor{inst: inst, historyFile: historyFile}, nil
}

// ReadLine reads one line, reporting io.EOF on end of input (the REPL
// loop maps that to an implicit quit).
func (e *terminalEditor) ReadLine(prompt string) (string, error) {
	e.inst.SetPrompt(prompt)
	line, err := e.inst.Readline()
	if err == readline.ErrInterrupt || err == io.EOF {
		return "", io.EOF
	}
	return line, err
}

func (e *terminalEditor) AddHistoryEntry(line string) error {
	return e.inst.SaveHistory(line)
}

func (e *terminalEditor) LoadHistory(path string) error {
	e.historyFile = path
	cfg := e.inst.Config
	cfg.HistoryFile = path
	return e.inst.SetConfig(cfg)
}

func (e *terminalEditor) SaveHistory(path string) error {
	// chzyer/readline persists history incrementally as entries are
	// added via AddHistoryEntry; there is no separate bulk-save step
	// beyond pointing it at the right file, which LoadHistory does.
	return nil
}

func (e *terminalEditor) ClearHistory() error {
	if e.historyFile == "" {
		return nil
	}
	return os.WriteFile(e.historyFile, nil, 0o600)
}

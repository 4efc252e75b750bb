// Package subprocess implements the Subprocess capability spec.md treats
// as an external collaborator: running a command line with provided
// stdin and capturing its stdout, plus the clipboard command selection
// logic the pb verb and HEL_PB use.
package subprocess

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/google/shlex"
)

// Run splits commandLine shell-style (respecting quotes and backslash
// escapes), runs the resulting argv with input delivered on stdin, and
// returns its captured stdout. stdin is written on a background
// goroutine so a large input cannot deadlock against a child that never
// drains it before producing output.
func Run(commandLine string, input string) (string, error) {
	args, err := shlex.Split(commandLine)
	if err != nil {
		return "", fmt.Errorf("parse command %q: %w", commandLine, err)
	}
	if len(args) == 0 {
		return "", fmt.Errorf("empty command")
	}

	cmd := exec.Command(args[0], args[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("open stdin pipe: %w", err)
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start %q: %w", args[0], err)
	}

	go func() {
		io.WriteString(stdin, input)
		stdin.Close()
	}()

	if err := cmd.Wait(); err != nil {
		return "", fmt.Errorf("run %q: %w", commandLine, err)
	}
	return stdout.String(), nil
}

// ClipboardCommand returns the command line to pipe clipboard contents
// into, per the documented precedence: an explicit override, else
// tmux's buffer when running inside tmux, else an OS-appropriate
// clipboard tool, else cat as a last resort.
func ClipboardCommand(override string) string {
	if override != "" {
		return override
	}
	if os.Getenv("TMUX") != "" {
		return "tmux load-buffer -"
	}
	switch runtime.GOOS {
	case "darwin":
		return "pbcopy"
	case "linux":
		return "xclip"
	default:
		return "cat"
	}
}

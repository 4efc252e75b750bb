// Program hel is an interactive credential-derivation REPL: it never
// stores secrets, only the metadata needed to re-derive them and a
// ledger of fingerprints confirming past derivations were correct.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/creachadair/getpass"

	"github.com/creachadair/hel/config"
	"github.com/creachadair/hel/eval"
	"github.com/creachadair/hel/internal/lineedit"
	"github.com/creachadair/hel/ledger"
	"github.com/creachadair/hel/resolver"
	"github.com/creachadair/hel/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	l, err := ledger.Load(cfg.CorrectFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: loading ledger:", err)
		return 1
	}

	s := store.New()
	r := &resolver.Resolver{Store: s, Ledger: l, Prompt: promptSecret}
	ev := eval.New(s, l, r, cfg)

	initQuit := false
	if _, err := os.Stat(cfg.InitFile); err == nil {
		o := eval.NewOutput()
		if ev.Eval(o, "source "+cfg.InitFile) {
			initQuit = true
		}
		printOutput(o)
	}

	editor, err := lineedit.New(cfg.Prompt, cfg.HistoryFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: opening line editor:", err)
		return 1
	}

	quit := initQuit
	for !quit {
		line, err := editor.ReadLine(cfg.Prompt)
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			break
		}

		o := eval.NewOutput()
		quit = ev.Eval(o, line)
		printOutput(o)
		if !o.SkipHistory {
			editor.AddHistoryEntry(line)
		}
	}

	fmt.Println("Bye!")
	if initQuit {
		return 1
	}
	return 0
}

func printOutput(o *eval.Output) {
	for _, line := range *o.Out {
		fmt.Println(line)
	}
	for _, line := range *o.Err {
		fmt.Fprintln(os.Stderr, line)
	}
}

func promptSecret(name string) (string, error) {
	prompt := "Master: "
	if name != "/" {
		prompt = name + ": "
	}
	return getpass.Prompt(prompt)
}

package eval

import (
	"os"
	"strconv"

	"github.com/creachadair/hel/config"
	"github.com/creachadair/hel/internal/subprocess"
	"github.com/creachadair/hel/ledger"
	"github.com/creachadair/hel/resolver"
	"github.com/creachadair/hel/store"
)

// New returns an Evaluator wired to the real filesystem and the real
// subprocess capability — the shape cmd/hel constructs. Tests construct
// Evaluator literals directly instead, stubbing RunSubprocess/ReadFile/
// WriteFile as needed.
func New(s *store.Store, l *ledger.Ledger, r *resolver.Resolver, cfg config.Config) *Evaluator {
	return &Evaluator{
		Store:         s,
		Ledger:        l,
		Resolver:      r,
		Config:        cfg,
		RunSubprocess: subprocess.Run,
		ReadFile:      defaultReadFile,
		WriteFile:     defaultWriteFile,
	}
}

func listingKey(i int) string {
	return strconv.FormatInt(int64(i+1), 36)
}

func clipboardCommand(override string) string {
	return subprocess.ClipboardCommand(override)
}

func defaultReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

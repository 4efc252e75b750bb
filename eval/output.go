package eval

// Output accumulates the stdout and stderr lines produced by evaluating
// one command. Out and Err are pointers rather than plain slices so a
// copy handed to a nested evaluation (the recursive calls inside
// source, pb's inner command with its own stdout buffer but the
// caller's stderr) can share the exact backing slice of whichever half
// it's meant to share: appends made deep in the recursion are visible
// to the caller without threading a return value back up by hand.
type Output struct {
	Out *[]string
	Err *[]string

	// SkipHistory is set when the command just evaluated should not be
	// appended to REPL history — currently only pass NAME LITERAL, so a
	// literal master never ends up sitting in a history file.
	SkipHistory bool
}

// NewOutput returns a fresh, empty, fully active Output.
func NewOutput() *Output {
	out := make([]string, 0)
	errs := make([]string, 0)
	return &Output{Out: &out, Err: &errs}
}

// PrintOut appends a line to the stdout buffer, if one is attached.
func (o *Output) PrintOut(line string) {
	if o.Out != nil {
		*o.Out = append(*o.Out, line)
	}
}

// PrintErr appends a line to the stderr buffer, if one is attached.
func (o *Output) PrintErr(line string) {
	if o.Err != nil {
		*o.Err = append(*o.Err, line)
	}
}

package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state and FlagSet.Args().
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a FlagSet that reports parse errors to Execute instead of printing or exiting.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. name is the first token after "cmd" (e.g. "grid"), usage a one-line
// synopsis for help. fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Usage returns the synopsis of a registered command.
func (r *Registry) Usage(name string) (string, bool) {
	cmd, ok := r.cmds[name]
	if !ok {
		return "", false
	}
	return cmd.Usage, true
}

// Parse interprets line as a terminal line. If line starts with "cmd " (case-sensitive),
// the rest is tokenized by spaces and returned with ok true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Every flag is reset to its default first. Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	// Flags keep their values between runs unless reset.
	defined := 0
	cmd.FlagSet.VisitAll(func(f *flag.Flag) {
		_ = f.Value.Set(f.DefValue)
		defined++
	})
	rest := args[1:]
	if defined == 0 {
		// Positional-only: "-10" is a number, not an unknown flag.
		rest = append([]string{"--"}, rest...)
	}
	if err := cmd.FlagSet.Parse(rest); err != nil {
		return fmt.Errorf("%s: %w (usage: %s)", name, err, cmd.Usage)
	}
	return cmd.Run()
}

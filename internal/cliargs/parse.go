package cliargs

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	versionFlag  = "version"
	fileFlag     = "file"
	bytecodeFlag = "bytecode"
	helpCommand  = "help"
)

// Args is the resolved argument record handed to command dispatch.
type Args struct {
	// Command is nil only when Version is set.
	Command Command

	// File is the --file path. A missing file is not an error.
	File string

	// Bytecode is the --bytecode path. A missing file is not an error.
	Bytecode string

	Version bool
}

// Parse matches argv (without the program name) against g. It never touches
// the filesystem. Errors are *ParseError, or *HelpRequest when help was asked
// for.
func Parse(g *Grammar, argv []string) (Args, error) {
	var (
		out  Args
		done bool
		buf  bytes.Buffer
	)
	root := g.newRoot(func(a Args) {
		out, done = a, true
	})
	if argv == nil {
		// cobra falls back to os.Args on nil
		argv = []string{}
	}
	if err := g.checkCommandToken(argv); err != nil {
		return Args{}, err
	}
	root.SetArgs(argv)
	root.SetOut(&buf)
	root.SetErr(&buf)

	if _, err := root.ExecuteC(); err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return Args{}, pe
		}
		return Args{}, &ParseError{Msg: err.Error(), Cause: err}
	}
	if !done {
		return Args{}, &HelpRequest{Usage: buf.String()}
	}
	return out, nil
}

// checkCommandToken rejects a first non-flag token that is neither a grammar
// command nor help, so cobra's hidden completion commands stay unreachable.
// Root flags are all boolean, so no flag consumes the token after it.
func (g *Grammar) checkCommandToken(argv []string) error {
	name, rest := firstOperand(argv)
	switch {
	case name == "":
		return nil
	case g.commands[name] != nil:
		return nil
	case name == helpCommand:
		if topic, _ := firstOperand(rest); topic != "" && g.commands[topic] == nil {
			return parseErrorf("unknown help topic %q for %q", topic, g.Program)
		}
		return nil
	}
	return parseErrorf("unknown command %q for %q", name, g.Program)
}

func firstOperand(argv []string) (string, []string) {
	for i, s := range argv {
		if !strings.HasPrefix(s, "-") {
			return s, argv[i+1:]
		}
	}
	return "", nil
}

func (g *Grammar) newRoot(emit func(Args)) *cobra.Command {
	var version bool
	root := &cobra.Command{
		Use:               g.Program,
		Short:             g.Summary,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(_ *cobra.Command, _ []string) error {
			if !version {
				return parseErrorf("no command given")
			}
			v := g.defaults()
			emit(Args{File: v.str(fileFlag), Bytecode: v.str(bytecodeFlag), Version: true})
			return nil
		},
	}
	root.Flags().BoolVar(&version, versionFlag, false, "Print the version and exit")

	for i := range g.Commands {
		root.AddCommand(g.newCommand(&g.Commands[i], emit))
	}
	return root
}

func (g *Grammar) newCommand(def *CommandDef, emit func(Args)) *cobra.Command {
	v := g.defaults()
	cmd := &cobra.Command{
		Use:   def.usage(),
		Short: def.Summary,
		Args:  g.positionalArgs(def),
		RunE: func(c *cobra.Command, pos []string) error {
			if err := def.collect(v, c.Flags(), pos); err != nil {
				return err
			}
			emit(Args{
				Command:  builders[def.Name](v),
				File:     v.str(fileFlag),
				Bytecode: v.str(bytecodeFlag),
			})
			return nil
		},
	}
	for _, name := range def.Flags {
		o := g.options[name]
		f := cmd.Flags().VarPF(&optionValue{typ: o.Type, name: o.Name, into: v}, o.Name, "", o.Usage)
		if o.Type == TypeBool {
			f.NoOptDefVal = "true"
		}
	}
	return cmd
}

// positionalArgs checks the positional count and rejects a second command
// token before any value is converted.
func (g *Grammar) positionalArgs(def *CommandDef) cobra.PositionalArgs {
	required := 0
	for _, p := range def.Args {
		if !p.Optional {
			required++
		}
	}
	return func(_ *cobra.Command, pos []string) error {
		for _, s := range pos {
			if g.commands[s] != nil {
				return parseErrorf("unexpected command %q after %q", s, def.Name)
			}
		}
		if len(pos) < required {
			return parseErrorf("%s: missing required argument <%s>", def.Name, def.Args[len(pos)].Name)
		}
		if len(pos) > len(def.Args) {
			return parseErrorf("%s: unexpected argument %q", def.Name, pos[len(def.Args)])
		}
		return nil
	}
}

// collect converts the positionals into v. Flags were already written there
// by their optionValue.
func (c *CommandDef) collect(v values, fs *pflag.FlagSet, pos []string) error {
	for i, p := range c.Args {
		lit := zeroLiteral(p.Type)
		if i < len(pos) {
			lit = pos[i]
		}
		x, err := convert(p.Type, lit)
		if err != nil {
			return &ParseError{
				Msg:   fmt.Sprintf("%s: invalid value %q for <%s>: %v", c.Name, lit, p.Name, err),
				Cause: err,
			}
		}
		v[p.Name] = x
	}

	if c.Input == "" {
		return nil
	}
	// Input is always the last positional.
	given := len(pos) == len(c.Args)
	fromFile := fs.Changed(fileFlag)
	switch {
	case given && fromFile:
		return parseErrorf("%s: <%s> and --%s are mutually exclusive", c.Name, c.Input, fileFlag)
	case !given && !fromFile:
		return parseErrorf("%s: requires <%s> or --%s", c.Name, c.Input, fileFlag)
	}
	return nil
}

func (c *CommandDef) usage() string {
	parts := []string{c.Name}
	for _, p := range c.Args {
		s := "<" + p.Name + ">"
		switch {
		case p.Name == c.Input:
			s = "(" + s + " | --" + fileFlag + "=<path>)"
		case p.Optional:
			s = "[" + s + "]"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// optionValue is a pflag.Value that converts with the grammar's rules and
// stores the result in a command's values.
type optionValue struct {
	typ  ValueType
	name string
	into values
}

func (o *optionValue) String() string {
	if o.into == nil {
		return ""
	}
	return fmt.Sprint(o.into[o.name])
}

func (o *optionValue) Set(s string) error {
	x, err := convert(o.typ, s)
	if err != nil {
		return err
	}
	o.into[o.name] = x
	return nil
}

func (o *optionValue) Type() string { return string(o.typ) }

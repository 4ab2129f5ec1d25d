package cliargs

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed grammar.yaml
var defaultGrammar []byte

// ValueType is the declared type of an option or positional.
type ValueType string

const (
	TypeString ValueType = "string"
	TypeBool   ValueType = "bool"
	TypeUint   ValueType = "uint"   // platform-sized, used for counts
	TypeUint8  ValueType = "uint8"  // e.g. ETH chain id
	TypeUint32 ValueType = "uint32" // e.g. BTC output index
	TypeUint64 ValueType = "uint64"
)

// Grammar is the declarative description of every accepted command.
type Grammar struct {
	Program  string       `yaml:"program"`
	Summary  string       `yaml:"summary"`
	Options  []Option     `yaml:"options"`
	Commands []CommandDef `yaml:"commands"`

	options  map[string]*Option
	commands map[string]*CommandDef
}

// Option is a valued flag shared by any command that lists it.
type Option struct {
	Name    string    `yaml:"name"`
	Type    ValueType `yaml:"type"`
	Default string    `yaml:"default"`
	Usage   string    `yaml:"usage"`
}

// Positional is a positional argument slot of a command.
type Positional struct {
	Name     string    `yaml:"name"`
	Type     ValueType `yaml:"type"`
	Optional bool      `yaml:"optional"`
}

// CommandDef describes one sub-command.
type CommandDef struct {
	Name    string       `yaml:"name"`
	Summary string       `yaml:"summary"`
	Args    []Positional `yaml:"args"`
	Flags   []string     `yaml:"flags"`
	// Input names the positional that may be supplied through --file instead.
	Input string `yaml:"input"`
}

// Default returns the grammar embedded in the binary. It panics if the
// embedded document is malformed.
func Default() *Grammar { return MustLoad(defaultGrammar) }

// MustLoad is like Load but panics on error.
func MustLoad(doc []byte) *Grammar {
	g, err := Load(doc)
	if err != nil {
		panic(err)
	}
	return g
}

// Load decodes and validates a grammar document.
func Load(doc []byte) (*Grammar, error) {
	var g Grammar
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	dec.KnownFields(true)
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("decode grammar: %w", err)
	}
	if err := g.validate(); err != nil {
		return nil, fmt.Errorf("grammar validation: %w", err)
	}
	return &g, nil
}

// Command returns the definition of the named command, or nil.
func (g *Grammar) Command(name string) *CommandDef { return g.commands[name] }

// Option returns the named option, or nil.
func (g *Grammar) Option(name string) *Option { return g.options[name] }

func (g *Grammar) validate() error {
	if g.Program == "" {
		return errors.New("program must not be empty")
	}
	if len(g.Commands) == 0 {
		return errors.New("no commands defined")
	}

	g.options = make(map[string]*Option, len(g.Options))
	for i := range g.Options {
		o := &g.Options[i]
		if o.Name == "" {
			return fmt.Errorf("options[%d]: name must not be empty", i)
		}
		if o.Name == versionFlag || o.Name == "help" {
			return fmt.Errorf("options[%d]: %q is reserved", i, o.Name)
		}
		if _, dup := g.options[o.Name]; dup {
			return fmt.Errorf("options[%d]: duplicate option %q", i, o.Name)
		}
		if _, err := convert(o.Type, o.Default); err != nil {
			return fmt.Errorf("option %q: default %q: %w", o.Name, o.Default, err)
		}
		g.options[o.Name] = o
	}
	for _, name := range []string{fileFlag, bytecodeFlag} {
		if o := g.options[name]; o == nil || o.Type != TypeString {
			return fmt.Errorf("option %q must be declared as string", name)
		}
	}

	g.commands = make(map[string]*CommandDef, len(g.Commands))
	for i := range g.Commands {
		c := &g.Commands[i]
		if c.Name == "" {
			return fmt.Errorf("commands[%d]: name must not be empty", i)
		}
		if _, dup := g.commands[c.Name]; dup {
			return fmt.Errorf("commands[%d]: duplicate command %q", i, c.Name)
		}
		if err := g.validateCommand(c); err != nil {
			return fmt.Errorf("command %q: %w", c.Name, err)
		}
		g.commands[c.Name] = c
	}

	for name := range builders {
		if g.commands[name] == nil {
			return fmt.Errorf("command %q has a record type but no grammar entry", name)
		}
	}
	return nil
}

func (g *Grammar) validateCommand(c *CommandDef) error {
	seen := make(map[string]struct{}, len(c.Args)+len(c.Flags))
	optional := false
	for i, p := range c.Args {
		if p.Name == "" {
			return fmt.Errorf("args[%d]: name must not be empty", i)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("args[%d]: duplicate argument %q", i, p.Name)
		}
		if g.options[p.Name] != nil {
			return fmt.Errorf("args[%d]: %q shadows an option", i, p.Name)
		}
		if _, err := convert(p.Type, zeroLiteral(p.Type)); err != nil {
			return fmt.Errorf("args[%d]: %w", i, err)
		}
		if p.Type == TypeBool {
			return fmt.Errorf("args[%d]: positional %q cannot be bool", i, p.Name)
		}
		if optional && !p.Optional {
			return fmt.Errorf("args[%d]: required argument %q follows an optional one", i, p.Name)
		}
		optional = optional || p.Optional
		seen[p.Name] = struct{}{}
	}
	for _, f := range c.Flags {
		if g.options[f] == nil {
			return fmt.Errorf("unknown option %q", f)
		}
		if _, dup := seen[f]; dup {
			return fmt.Errorf("duplicate flag %q", f)
		}
		seen[f] = struct{}{}
	}
	if c.Input != "" {
		p := c.positional(c.Input)
		if p == nil || !p.Optional || c.Args[len(c.Args)-1].Name != c.Input {
			return fmt.Errorf("input %q must be the last, optional argument", c.Input)
		}
		if _, ok := seen[fileFlag]; !ok {
			return fmt.Errorf("input %q requires the %q flag", c.Input, fileFlag)
		}
	}

	build, ok := builders[c.Name]
	if !ok {
		return errors.New("no record type for command")
	}
	return checkBuilder(build, g.zeroValues(c))
}

func (c *CommandDef) positional(name string) *Positional {
	for i := range c.Args {
		if c.Args[i].Name == name {
			return &c.Args[i]
		}
	}
	return nil
}

// defaults returns every option at its declared default.
func (g *Grammar) defaults() values {
	v := make(values, len(g.Options))
	for _, o := range g.Options {
		v[o.Name], _ = convert(o.Type, o.Default)
	}
	return v
}

// zeroValues returns the values a command would see with every positional
// set to its zero value.
func (g *Grammar) zeroValues(c *CommandDef) values {
	v := g.defaults()
	for _, p := range c.Args {
		v[p.Name], _ = convert(p.Type, zeroLiteral(p.Type))
	}
	return v
}

func zeroLiteral(t ValueType) string {
	switch t {
	case TypeString:
		return ""
	case TypeBool:
		return "false"
	}
	return "0"
}

// convert parses s as a value of type t. Numbers are decimal and must fit
// the declared width.
func convert(t ValueType, s string) (any, error) {
	switch t {
	case TypeString:
		return s, nil
	case TypeBool:
		return strconv.ParseBool(s)
	case TypeUint:
		n, err := strconv.ParseUint(s, 10, strconv.IntSize)
		return uint(n), err
	case TypeUint8:
		n, err := strconv.ParseUint(s, 10, 8)
		return uint8(n), err
	case TypeUint32:
		n, err := strconv.ParseUint(s, 10, 32)
		return uint32(n), err
	case TypeUint64:
		return strconv.ParseUint(s, 10, 64)
	}
	return nil, fmt.Errorf("unknown type %q", t)
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"BridgeCLI/internal/cliargs"
	"BridgeCLI/pkg/logx"
)

// Handler executes one resolved command.
type Handler func(ctx context.Context, args cliargs.Args, out io.Writer) error

// Runner resolves process arguments and hands the record to the handler
// registered for its command.
type Runner struct {
	Grammar  *cliargs.Grammar
	Version  string
	Handlers map[string]Handler
	// Fallback runs commands with no registered handler. Defaults to PrintArgs.
	Fallback Handler

	Out io.Writer
	Err io.Writer
}

func NewRunner(version string) *Runner {
	return &Runner{
		Grammar:  cliargs.Default(),
		Version:  version,
		Handlers: map[string]Handler{},
		Fallback: PrintArgs,
		Out:      os.Stdout,
		Err:      os.Stderr,
	}
}

// Handle registers h for the named command.
func (r *Runner) Handle(command string, h Handler) {
	if r.Grammar.Command(command) == nil {
		panic(fmt.Sprintf("cli: no such command %q", command))
	}
	r.Handlers[command] = h
}

// Run resolves argv and dispatches it. It returns the process exit code.
func (r *Runner) Run(ctx context.Context, argv []string) int {
	args, err := cliargs.Resolve(r.Grammar, argv)
	if err != nil {
		var help *cliargs.HelpRequest
		if errors.As(err, &help) {
			fmt.Fprint(r.Out, help.Usage)
			return 0
		}
		logx.S().Errorw("argument resolution failed", "err", err)
		fmt.Fprintf(r.Err, "✘ %v\n", err)

		var pe *cliargs.ParseError
		if errors.As(err, &pe) {
			fmt.Fprintf(r.Err, "Run '%s --help' for usage.\n", r.Grammar.Program)
		}
		return 1
	}

	if args.Version {
		fmt.Fprintln(r.Out, r.Version)
		return 0
	}

	name := args.Command.Name()
	h, ok := r.Handlers[name]
	if !ok {
		h = r.Fallback
	}
	if h == nil {
		h = PrintArgs
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logx.S().Infow("dispatching command", "command", name)
	if err := h(ctx, args, r.Out); err != nil {
		logx.S().Errorw("command failed", "command", name, "err", err)
		fmt.Fprintf(r.Err, "✘ %s: %v\n", name, err)
		return 1
	}
	logx.S().Infow("command done", "command", name)
	return 0
}

// PrintArgs writes the resolved record as indented JSON.
func PrintArgs(_ context.Context, args cliargs.Args, out io.Writer) error {
	b, err := json.MarshalIndent(struct {
		Command  string          `json:"command"`
		Params   cliargs.Command `json:"params"`
		File     string          `json:"file,omitempty"`
		Bytecode string          `json:"bytecode,omitempty"`
	}{args.Command.Name(), args.Command, args.File, args.Bytecode}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}


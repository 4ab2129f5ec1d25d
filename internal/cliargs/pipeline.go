package cliargs

import "BridgeCLI/pkg/logx"

// Stage is one step of argument resolution.
type Stage func(Args) (Args, error)

// Run applies stages in order and returns the first error unchanged.
func Run(args Args, stages ...Stage) (Args, error) {
	for _, stage := range stages {
		next, err := stage(args)
		if err != nil {
			return Args{}, err
		}
		args = next
	}
	return args, nil
}

// Resolve parses argv against g, then hydrates the record from --file and
// resolves --bytecode.
func Resolve(g *Grammar, argv []string) (Args, error) {
	args, err := Parse(g, argv)
	if err != nil {
		return Args{}, err
	}
	logx.With("cliargs").Debugw("arguments parsed", "command", commandName(args.Command), "version", args.Version)
	return Run(args, Hydrate, ResolveBytecodePath)
}

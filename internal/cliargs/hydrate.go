package cliargs

import (
	"errors"
	"os"
	"unicode/utf8"

	"BridgeCLI/pkg/logx"
)

// StageHydrate names the hydration stage in an IoError.
const StageHydrate = "hydrate"

// exists mirrors a plain existence check: any stat failure counts as absent.
func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Hydrate replaces the JSON input of the selected command with the contents
// of args.File when that file exists. debugAddUtxos receives the UTXOs JSON;
// every other command receives the block JSON, which is dropped by commands
// that take no block.
func Hydrate(args Args) (Args, error) {
	log := logx.With("cliargs")
	if !exists(args.File) {
		log.Infow("no file exists at path, not reading file", "path", args.File)
		return args, nil
	}
	log.Infow("file exists at path, reading file", "path", args.File)

	data, err := os.ReadFile(args.File)
	if err != nil {
		return Args{}, &IoError{Stage: StageHydrate, Path: args.File, Cause: err}
	}
	if !utf8.Valid(data) {
		return Args{}, &IoError{Stage: StageHydrate, Path: args.File, Cause: errors.New("file is not valid UTF-8")}
	}
	contents := string(data)

	switch c := args.Command.(type) {
	case DebugAddUtxos:
		log.Infow("updating UTXOs in args")
		c.UTXOsJSON = contents
		args.Command = c
	case blockInput:
		log.Infow("updating block in args")
		args.Command = c.withBlockJSON(contents)
	default:
		log.Debugw("command takes no block, ignoring file contents", "command", commandName(args.Command))
	}
	return args, nil
}

// ResolveBytecodePath copies args.Bytecode into the bytecode path of the
// selected command when that file exists. The file itself is not read.
func ResolveBytecodePath(args Args) (Args, error) {
	if !exists(args.Bytecode) {
		return args, nil
	}
	logx.With("cliargs").Infow("bytecode file exists at path, using it", "path", args.Bytecode)
	if c, ok := args.Command.(InitializeEth); ok {
		c.Path = args.Bytecode
		args.Command = c
	}
	return args, nil
}

func commandName(c Command) string {
	if c == nil {
		return ""
	}
	return c.Name()
}

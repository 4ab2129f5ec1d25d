package cliargs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestHydrateAddUtxos(t *testing.T) {
	path := writeFile(t, "utxos.json", "[1,2,3]")
	in := Args{Command: DebugAddUtxos{}, File: path}

	out, err := Hydrate(in)
	require.NoError(t, err)

	assert.Equal(t, DebugAddUtxos{UTXOsJSON: "[1,2,3]"}, out.Command)
	assert.Equal(t, path, out.File)
	assert.Equal(t, DebugAddUtxos{}, in.Command, "input record is not modified")
}

func TestHydrateBlockCommands(t *testing.T) {
	const block = `{"hash":"abc"}`
	path := writeFile(t, "block.json", block)

	tests := []struct {
		in   Command
		want Command
	}{
		{InitializeEth{ChainID: 3}, InitializeEth{ChainID: 3, BlockJSON: block}},
		{InitializeBtc{Fee: 23}, InitializeBtc{Fee: 23, BlockJSON: block}},
		{SubmitEthBlock{}, SubmitEthBlock{BlockJSON: block}},
		{SubmitBtcBlock{BlockJSON: "stale"}, SubmitBtcBlock{BlockJSON: block}},
		{DebugMaybeAddUtxoToDb{}, DebugMaybeAddUtxoToDb{BlockJSON: block}},
		{DebugReprocessBtcBlock{}, DebugReprocessBtcBlock{BlockJSON: block}},
		{DebugReprocessEthBlock{}, DebugReprocessEthBlock{BlockJSON: block}},
	}

	for _, tt := range tests {
		t.Run(tt.in.Name(), func(t *testing.T) {
			out, err := Hydrate(Args{Command: tt.in, File: path})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Command)
		})
	}
}

func TestHydrateCommandWithoutBlock(t *testing.T) {
	path := writeFile(t, "block.json", "{}")

	for _, c := range []Command{
		GetEnclaveState{},
		DebugGetKeyFromDb{Key: "k"},
		SignMessageWithEthKey{Message: "m"},
		DebugRemoveUtxo{TxID: "t", VOut: 1},
	} {
		in := Args{Command: c, File: path}
		out, err := Hydrate(in)
		require.NoError(t, err, c.Name())
		assert.Equal(t, in, out, c.Name())
	}
}

func TestHydrateMissingFileIsIdentity(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.json")

	for _, in := range []Args{
		{Command: SubmitBtcBlock{BlockJSON: "{}"}, File: missing},
		{Command: DebugAddUtxos{UTXOsJSON: "[]"}, File: missing},
		{Command: GetEnclaveState{}},
	} {
		out, err := Hydrate(in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestHydrateReadFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := Hydrate(Args{Command: SubmitBtcBlock{}, File: dir})
	require.Error(t, err)

	var ioErr *IoError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, StageHydrate, ioErr.Stage)
	assert.Equal(t, dir, ioErr.Path)
	assert.Error(t, ioErr.Unwrap())
}

func TestHydrateRejectsInvalidUTF8(t *testing.T) {
	path := writeFile(t, "block.bin", string([]byte{0xff, 0xfe, 0xfd}))

	out, err := Hydrate(Args{Command: SubmitEthBlock{}, File: path})
	var ioErr *IoError
	require.True(t, errors.As(err, &ioErr))
	assert.Contains(t, ioErr.Error(), "UTF-8")
	assert.Equal(t, Args{}, out)
}

func TestResolveBytecodePath(t *testing.T) {
	bytecode := writeFile(t, "erc777.bin", "6080604052")

	out, err := ResolveBytecodePath(Args{Command: InitializeEth{ChainID: 1}, Bytecode: bytecode})
	require.NoError(t, err)
	assert.Equal(t, InitializeEth{ChainID: 1, Path: bytecode}, out.Command)
}

func TestResolveBytecodePathMissingFile(t *testing.T) {
	in := Args{
		Command:  InitializeEth{Path: "unchanged"},
		Bytecode: filepath.Join(t.TempDir(), "missing.bin"),
	}

	out, err := ResolveBytecodePath(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestResolveBytecodePathOtherCommand(t *testing.T) {
	in := Args{Command: SubmitEthBlock{BlockJSON: "{}"}, Bytecode: writeFile(t, "erc777.bin", "60")}

	out, err := ResolveBytecodePath(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

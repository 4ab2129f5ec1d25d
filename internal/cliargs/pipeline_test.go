package cliargs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSubmitBtcBlockFromFile(t *testing.T) {
	path := writeFile(t, "block.json", `{"hash":"abc"}`)

	args, err := Resolve(Default(), []string{"submitBtcBlock", "--file=" + path})
	require.NoError(t, err)

	assert.Equal(t, SubmitBtcBlock{BlockJSON: `{"hash":"abc"}`}, args.Command)
	assert.Equal(t, path, args.File)
}

func TestResolveAddUtxosFromFile(t *testing.T) {
	path := writeFile(t, "utxos.json", "[1,2,3]")

	args, err := Resolve(Default(), []string{"debugAddUtxos", "--file=" + path})
	require.NoError(t, err)

	assert.Equal(t, DebugAddUtxos{UTXOsJSON: "[1,2,3]"}, args.Command)
}

func TestResolveGetEnclaveState(t *testing.T) {
	args, err := Resolve(Default(), []string{"getEnclaveState"})
	require.NoError(t, err)

	assert.Equal(t, GetEnclaveState{}, args.Command)
	assert.Empty(t, args.File)
	assert.False(t, args.Version)
}

func TestResolveInitializeEth(t *testing.T) {
	block := writeFile(t, "eth-block.json", `{"number":1}`)
	bytecode := writeFile(t, "erc777.bin", "6080")

	args, err := Resolve(Default(), []string{
		"initializeEth", "--file=" + block, "--bytecode=" + bytecode, "--chainId=42",
	})
	require.NoError(t, err)

	assert.Equal(t, InitializeEth{
		BlockJSON:  `{"number":1}`,
		ChainID:    42,
		GasPrice:   20000000000,
		EthNetwork: "mainnet",
		Path:       bytecode,
	}, args.Command)
}

func TestResolveMissingFileKeepsRecord(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	args, err := Resolve(Default(), []string{"submitEthBlock", "--file=" + missing})
	require.NoError(t, err)
	assert.Equal(t, SubmitEthBlock{}, args.Command)
}

func TestResolveFailures(t *testing.T) {
	var parseErr *ParseError
	_, err := Resolve(Default(), []string{"submitBtcBlock", "--fee=1"})
	assert.True(t, errors.As(err, &parseErr))

	var ioErr *IoError
	_, err = Resolve(Default(), []string{"submitBtcBlock", "--file=" + t.TempDir()})
	assert.True(t, errors.As(err, &ioErr))
}

func TestRunShortCircuits(t *testing.T) {
	boom := errors.New("boom")
	var calls []string

	stage := func(name string, err error) Stage {
		return func(a Args) (Args, error) {
			calls = append(calls, name)
			if err != nil {
				return a, err
			}
			a.File += name
			return a, nil
		}
	}

	out, err := Run(Args{}, stage("a", nil), stage("b", nil))
	require.NoError(t, err)
	assert.Equal(t, "ab", out.File)

	calls = nil
	out, err = Run(Args{}, stage("a", nil), stage("b", boom), stage("c", nil))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Args{}, out)
	assert.Equal(t, []string{"a", "b"}, calls)
}

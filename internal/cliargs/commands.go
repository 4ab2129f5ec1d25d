package cliargs

import "fmt"

// Command is the resolved sub-command. Exactly one concrete type is held by
// a parsed Args, so commands are mutually exclusive by construction.
type Command interface {
	// Name returns the sub-command token as written on the command line.
	Name() string
	isCommand()
}

// blockInput is implemented by commands whose block JSON may come from --file.
type blockInput interface {
	Command
	withBlockJSON(string) Command
}

type InitializeEth struct {
	BlockJSON  string `json:"blockJson"`
	ChainID    uint8  `json:"chainId"`
	GasPrice   uint64 `json:"gasPrice"`
	Confs      uint64 `json:"confs"`
	EthNetwork string `json:"ethNetwork"`
	// Path is the resolved bytecode location, set from --bytecode.
	Path string `json:"path"`
}

type InitializeBtc struct {
	BlockJSON  string `json:"blockJson"`
	Fee        uint64 `json:"fee"`
	Difficulty uint64 `json:"difficulty"`
	Network    string `json:"network"`
	Confs      uint64 `json:"confs"`
}

type SubmitEthBlock struct {
	BlockJSON string `json:"blockJson"`
}

type SubmitBtcBlock struct {
	BlockJSON string `json:"blockJson"`
}

type GetEnclaveState struct{}

type GetLatestBlockNumbers struct{}

type DebugAddUtxos struct {
	UTXOsJSON string `json:"utxosJson"`
}

type DebugRemoveUtxo struct {
	TxID string `json:"txId"`
	VOut uint32 `json:"vOut"`
}

type DebugGetAllUtxos struct{}

type DebugGetAllDbKeys struct{}

type DebugGetKeyFromDb struct {
	Key string `json:"key"`
}

type DebugClearAllUtxos struct{}

type DebugMaybeAddUtxoToDb struct {
	BlockJSON string `json:"blockJson"`
}

type DebugConsolidateUtxos struct {
	NumUtxos  uint   `json:"numUtxos"`
	Fee       uint64 `json:"fee"`
	Recipient string `json:"recipient"`
}

type DebugReprocessBtcBlock struct {
	BlockJSON string `json:"blockJson"`
}

type DebugReprocessEthBlock struct {
	BlockJSON string `json:"blockJson"`
}

type DebugSetKeyInDbToValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PNetworkChange carries the arguments shared by the ERC777 pNetwork
// address change commands.
type PNetworkChange struct {
	Address  string `json:"address"`
	Nonce    uint64 `json:"nonce"`
	GasPrice uint64 `json:"gasPrice"`
}

type DebugErc777ChangePNetwork struct{ PNetworkChange }

type DebugErc777ProxyChangePNetwork struct{ PNetworkChange }

type DebugErc777ProxyChangePNetworkByProxy struct{ PNetworkChange }

type DebugGetChildPaysForParentTx struct {
	TxID string `json:"txId"`
	VOut uint32 `json:"vOut"`
	Fee  uint64 `json:"fee"`
}

type SignMessageWithEthKey struct {
	Message string `json:"message"`
}

type SignHexMsgWithEthKeyWithPrefix struct {
	Message string `json:"message"`
}

type SignAsciiMsgWithEthKeyWithNoPrefix struct {
	Message string `json:"message"`
}

func (InitializeEth) Name() string                         { return "initializeEth" }
func (InitializeBtc) Name() string                         { return "initializeBtc" }
func (SubmitEthBlock) Name() string                        { return "submitEthBlock" }
func (SubmitBtcBlock) Name() string                        { return "submitBtcBlock" }
func (GetEnclaveState) Name() string                       { return "getEnclaveState" }
func (GetLatestBlockNumbers) Name() string                 { return "getLatestBlockNumbers" }
func (DebugAddUtxos) Name() string                         { return "debugAddUtxos" }
func (DebugRemoveUtxo) Name() string                       { return "debugRemoveUtxo" }
func (DebugGetAllUtxos) Name() string                      { return "debugGetAllUtxos" }
func (DebugGetAllDbKeys) Name() string                     { return "debugGetAllDbKeys" }
func (DebugGetKeyFromDb) Name() string                     { return "debugGetKeyFromDb" }
func (DebugClearAllUtxos) Name() string                    { return "debugClearAllUtxos" }
func (DebugMaybeAddUtxoToDb) Name() string                 { return "debugMaybeAddUtxoToDb" }
func (DebugConsolidateUtxos) Name() string                 { return "debugConsolidateUtxos" }
func (DebugReprocessBtcBlock) Name() string                { return "debugReprocessBtcBlock" }
func (DebugReprocessEthBlock) Name() string                { return "debugReprocessEthBlock" }
func (DebugSetKeyInDbToValue) Name() string                { return "debugSetKeyInDbToValue" }
func (DebugErc777ChangePNetwork) Name() string             { return "debugErc777ChangePNetwork" }
func (DebugErc777ProxyChangePNetwork) Name() string        { return "debugErc777ProxyChangePNetwork" }
func (DebugErc777ProxyChangePNetworkByProxy) Name() string { return "debugErc777ProxyChangePNetworkByProxy" }
func (DebugGetChildPaysForParentTx) Name() string          { return "debugGetChildPaysForParentTx" }
func (SignMessageWithEthKey) Name() string                 { return "signMessageWithEthKey" }
func (SignHexMsgWithEthKeyWithPrefix) Name() string        { return "signHexMsgWithEthKeyWithPrefix" }
func (SignAsciiMsgWithEthKeyWithNoPrefix) Name() string    { return "signAsciiMsgWithEthKeyWithNoPrefix" }

func (InitializeEth) isCommand()                         {}
func (InitializeBtc) isCommand()                         {}
func (SubmitEthBlock) isCommand()                        {}
func (SubmitBtcBlock) isCommand()                        {}
func (GetEnclaveState) isCommand()                       {}
func (GetLatestBlockNumbers) isCommand()                 {}
func (DebugAddUtxos) isCommand()                         {}
func (DebugRemoveUtxo) isCommand()                       {}
func (DebugGetAllUtxos) isCommand()                      {}
func (DebugGetAllDbKeys) isCommand()                     {}
func (DebugGetKeyFromDb) isCommand()                     {}
func (DebugClearAllUtxos) isCommand()                    {}
func (DebugMaybeAddUtxoToDb) isCommand()                 {}
func (DebugConsolidateUtxos) isCommand()                 {}
func (DebugReprocessBtcBlock) isCommand()                {}
func (DebugReprocessEthBlock) isCommand()                {}
func (DebugSetKeyInDbToValue) isCommand()                {}
func (DebugErc777ChangePNetwork) isCommand()             {}
func (DebugErc777ProxyChangePNetwork) isCommand()        {}
func (DebugErc777ProxyChangePNetworkByProxy) isCommand() {}
func (DebugGetChildPaysForParentTx) isCommand()          {}
func (SignMessageWithEthKey) isCommand()                 {}
func (SignHexMsgWithEthKeyWithPrefix) isCommand()        {}
func (SignAsciiMsgWithEthKeyWithNoPrefix) isCommand()    {}

func (c InitializeEth) withBlockJSON(s string) Command          { c.BlockJSON = s; return c }
func (c InitializeBtc) withBlockJSON(s string) Command          { c.BlockJSON = s; return c }
func (c SubmitEthBlock) withBlockJSON(s string) Command         { c.BlockJSON = s; return c }
func (c SubmitBtcBlock) withBlockJSON(s string) Command         { c.BlockJSON = s; return c }
func (c DebugMaybeAddUtxoToDb) withBlockJSON(s string) Command  { c.BlockJSON = s; return c }
func (c DebugReprocessBtcBlock) withBlockJSON(s string) Command { c.BlockJSON = s; return c }
func (c DebugReprocessEthBlock) withBlockJSON(s string) Command { c.BlockJSON = s; return c }

// values holds the typed option and positional values seen by one command.
type values map[string]any

func get[T any](v values, name string) T {
	x, ok := v[name].(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("cliargs: %q is not declared as %T", name, zero))
	}
	return x
}

func (v values) str(name string) string { return get[string](v, name) }
func (v values) u8(name string) uint8   { return get[uint8](v, name) }
func (v values) u32(name string) uint32 { return get[uint32](v, name) }
func (v values) u64(name string) uint64 { return get[uint64](v, name) }
func (v values) uint(name string) uint  { return get[uint](v, name) }

func pnetworkChange(v values) PNetworkChange {
	return PNetworkChange{Address: v.str("address"), Nonce: v.u64("nonce"), GasPrice: v.u64("gasPrice")}
}

// builders turn the typed values of a parsed command into its record.
var builders = map[string]func(values) Command{
	"initializeEth": func(v values) Command {
		return InitializeEth{
			BlockJSON:  v.str("blockJson"),
			ChainID:    v.u8("chainId"),
			GasPrice:   v.u64("gasPrice"),
			Confs:      v.u64("confs"),
			EthNetwork: v.str("ethNetwork"),
		}
	},
	"initializeBtc": func(v values) Command {
		return InitializeBtc{
			BlockJSON:  v.str("blockJson"),
			Fee:        v.u64("fee"),
			Difficulty: v.u64("difficulty"),
			Network:    v.str("network"),
			Confs:      v.u64("confs"),
		}
	},
	"submitEthBlock":        func(v values) Command { return SubmitEthBlock{BlockJSON: v.str("blockJson")} },
	"submitBtcBlock":        func(v values) Command { return SubmitBtcBlock{BlockJSON: v.str("blockJson")} },
	"getEnclaveState":       func(values) Command { return GetEnclaveState{} },
	"getLatestBlockNumbers": func(values) Command { return GetLatestBlockNumbers{} },
	"debugAddUtxos":         func(v values) Command { return DebugAddUtxos{UTXOsJSON: v.str("utxosJson")} },
	"debugRemoveUtxo": func(v values) Command {
		return DebugRemoveUtxo{TxID: v.str("txId"), VOut: v.u32("vOut")}
	},
	"debugGetAllUtxos":      func(values) Command { return DebugGetAllUtxos{} },
	"debugGetAllDbKeys":     func(values) Command { return DebugGetAllDbKeys{} },
	"debugGetKeyFromDb":     func(v values) Command { return DebugGetKeyFromDb{Key: v.str("key")} },
	"debugClearAllUtxos":    func(values) Command { return DebugClearAllUtxos{} },
	"debugMaybeAddUtxoToDb": func(v values) Command { return DebugMaybeAddUtxoToDb{BlockJSON: v.str("blockJson")} },
	"debugConsolidateUtxos": func(v values) Command {
		return DebugConsolidateUtxos{NumUtxos: v.uint("numUtxos"), Fee: v.u64("fee"), Recipient: v.str("recipient")}
	},
	"debugReprocessBtcBlock": func(v values) Command { return DebugReprocessBtcBlock{BlockJSON: v.str("blockJson")} },
	"debugReprocessEthBlock": func(v values) Command { return DebugReprocessEthBlock{BlockJSON: v.str("blockJson")} },
	"debugSetKeyInDbToValue": func(v values) Command {
		return DebugSetKeyInDbToValue{Key: v.str("key"), Value: v.str("value")}
	},
	"debugErc777ChangePNetwork": func(v values) Command {
		return DebugErc777ChangePNetwork{pnetworkChange(v)}
	},
	"debugErc777ProxyChangePNetwork": func(v values) Command {
		return DebugErc777ProxyChangePNetwork{pnetworkChange(v)}
	},
	"debugErc777ProxyChangePNetworkByProxy": func(v values) Command {
		return DebugErc777ProxyChangePNetworkByProxy{pnetworkChange(v)}
	},
	"debugGetChildPaysForParentTx": func(v values) Command {
		return DebugGetChildPaysForParentTx{TxID: v.str("txId"), VOut: v.u32("vOut"), Fee: v.u64("fee")}
	},
	"signMessageWithEthKey": func(v values) Command { return SignMessageWithEthKey{Message: v.str("message")} },
	"signHexMsgWithEthKeyWithPrefix": func(v values) Command {
		return SignHexMsgWithEthKeyWithPrefix{Message: v.str("message")}
	},
	"signAsciiMsgWithEthKeyWithNoPrefix": func(v values) Command {
		return SignAsciiMsgWithEthKeyWithNoPrefix{Message: v.str("message")}
	},
}

// checkBuilder runs build against v and reports a missing or mistyped value
// as an error instead of a panic.
func checkBuilder(build func(values) Command, v values) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	build(v)
	return nil
}

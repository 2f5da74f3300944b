package abi

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Encode is the equivalent of Solidity's abi.encode for the argument list described by abiStr.
// Operation identifiers are derived from this encoding, so it must stay byte compatible with
// the on-chain timelock.
//
// See a full set of examples https://github.com/ethereum/go-ethereum/blob/420b78659bef661a83c5c442121b13f13288c09f/accounts/abi/packing_test.go#L31
func Encode(abiStr string, values ...any) ([]byte, error) {
	args, err := arguments(abiStr)
	if err != nil {
		return nil, err
	}

	return args.Pack(values...)
}

// arguments builds the argument list from a JSON array of ABI types by wrapping it into a
// dummy method definition.
func arguments(abiStr string) (abi.Arguments, error) {
	def := fmt.Sprintf(`[{ "name" : "method", "type": "function", "inputs": %s}]`, abiStr)
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		return nil, err
	}

	return parsed.Methods["method"].Inputs, nil
}

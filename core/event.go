package core

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/superchain-meme/launchpad/contracts"
)

const tokenAddressArg = "tokenAddress"

// ExtractTokenAddress returns the token address carried by the first TokenDeployed log
// emitted by launchpad.
func ExtractTokenAddress(receipt *ethtypes.Receipt, launchpad common.Address, launchpadAbi abi.ABI) (common.Address, error) {
	event := launchpadAbi.Events[contracts.TokenDeployedEvent]
	for _, l := range receipt.Logs {
		if l == nil || l.Address != launchpad {
			continue
		}
		if len(l.Topics) == 0 || l.Topics[0] != event.ID {
			continue
		}
		return decodeTokenAddress(receipt.TxHash, event, l.Topics[1:])
	}
	return common.Address{}, &MissingEventError{TxHash: receipt.TxHash}
}

func decodeTokenAddress(txHash common.Hash, event abi.Event, topics []common.Hash) (common.Address, error) {
	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if len(topics) < len(indexed) {
		return common.Address{}, &MissingEventError{TxHash: txHash, Reason: "token address topic is absent"}
	}
	// An address topic is left padded with 12 zero bytes.
	if common.BytesToHash(topics[0][:12]) != (common.Hash{}) {
		return common.Address{}, &MissingEventError{TxHash: txHash, Reason: "malformed token address topic"}
	}
	values := make(map[string]interface{})
	if err := abi.ParseTopicsIntoMap(values, indexed, topics[:len(indexed)]); err != nil {
		return common.Address{}, &MissingEventError{TxHash: txHash, Reason: err.Error()}
	}
	address, ok := values[tokenAddressArg].(common.Address)
	if !ok || address == (common.Address{}) {
		return common.Address{}, &MissingEventError{TxHash: txHash, Reason: "malformed token address topic"}
	}
	return address, nil
}

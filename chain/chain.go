package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type Wallet interface {
	// Account returns the connected account, false when no account is connected.
	Account() (common.Address, bool)
	Submit(ctx context.Context, contract common.Address, contractAbi abi.ABI, method string, args ...interface{}) (*types.Transaction, error)
	// AwaitReceipt blocks until the transaction is mined or ctx is done.
	AwaitReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

package core

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/superchain-meme/launchpad/contracts"
)

var (
	launchpadAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	deployerAccount  = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

type submission struct {
	contract common.Address
	method   string
	args     []interface{}
}

type fakeWallet struct {
	connected  bool
	submitErr  error
	receiptErr error
	// builds the receipt for the n-th submitted transaction
	receipt func(n int, tx *ethtypes.Transaction) *ethtypes.Receipt
	// when set, AwaitReceipt waits for a value before returning
	release chan struct{}

	mutex       sync.Mutex
	submissions []submission
}

func newFakeWallet(receipt func(n int, tx *ethtypes.Transaction) *ethtypes.Receipt) *fakeWallet {
	return &fakeWallet{
		connected: true,
		receipt:   receipt,
	}
}

func (w *fakeWallet) Account() (common.Address, bool) {
	if !w.connected {
		return common.Address{}, false
	}
	return deployerAccount, true
}

func (w *fakeWallet) Submit(ctx context.Context, contract common.Address, contractAbi abi.ABI, method string, args ...interface{}) (*ethtypes.Transaction, error) {
	if w.submitErr != nil {
		return nil, w.submitErr
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.submissions = append(w.submissions, submission{contract: contract, method: method, args: args})
	return ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    uint64(len(w.submissions) - 1),
		To:       &contract,
		Gas:      1000000,
		GasPrice: big.NewInt(1),
	}), nil
}

func (w *fakeWallet) AwaitReceipt(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Receipt, error) {
	if w.release != nil {
		select {
		case <-w.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if w.receiptErr != nil {
		return nil, w.receiptErr
	}
	return w.receipt(int(tx.Nonce()), tx), nil
}

func (w *fakeWallet) submitted() []submission {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return append([]submission(nil), w.submissions...)
}

func tokenAddressAt(n int) common.Address {
	return common.BigToAddress(big.NewInt(int64(0x1000 + n)))
}

func successfulReceipt(n int, tx *ethtypes.Transaction) *ethtypes.Receipt {
	return receiptWithLogs(tx, tokenDeployedLog(launchpadAddress, common.BytesToHash(tokenAddressAt(n).Bytes())))
}

func receiptWithLogs(tx *ethtypes.Transaction, logs ...*ethtypes.Log) *ethtypes.Receipt {
	return &ethtypes.Receipt{
		Status: ethtypes.ReceiptStatusSuccessful,
		TxHash: tx.Hash(),
		Logs:   logs,
	}
}

func tokenDeployedLog(address common.Address, tokenTopic common.Hash) *ethtypes.Log {
	event := contracts.ABI().Events[contracts.TokenDeployedEvent]
	data, err := event.Inputs.NonIndexed().Pack("Meme", "MEME", uint8(18))
	if err != nil {
		panic(err)
	}
	return &ethtypes.Log{
		Address: address,
		Topics:  []common.Hash{event.ID, tokenTopic},
		Data:    data,
	}
}

var errUserRejected = errors.New("user rejected transaction")

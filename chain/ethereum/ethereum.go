package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/awnumar/memguard"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/superchain-meme/launchpad/chain"
)

const dialTimeout = 15 * time.Second

type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

type wallet struct {
	backend Backend
	chainID *big.Int
	account common.Address
	// nil when no key is configured
	key *memguard.Enclave
}

// Dial connects to the RPC endpoint. An empty privateKey yields a wallet with no
// connected account.
func Dial(rpcURL, privateKey string) (chain.Wallet, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect to %v", rpcURL)
	}
	return NewWallet(ctx, client, privateKey)
}

func NewWallet(ctx context.Context, backend Backend, privateKey string) (chain.Wallet, error) {
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to get chain id")
	}
	w := &wallet{
		backend: backend,
		chainID: chainID,
	}
	if len(privateKey) == 0 {
		log.Warn("No deployer key configured, launches are disabled")
		return w, nil
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse private key")
	}
	w.account = crypto.PubkeyToAddress(key.PublicKey)
	w.key = memguard.NewEnclave(crypto.FromECDSA(key))
	log.Info(fmt.Sprintf("Wallet connected, account: %v, chain id: %v", w.account.Hex(), chainID))
	return w, nil
}

func (w *wallet) Account() (common.Address, bool) {
	if w.key == nil {
		return common.Address{}, false
	}
	return w.account, true
}

func (w *wallet) Submit(ctx context.Context, contract common.Address, contractAbi abi.ABI, method string, args ...interface{}) (*types.Transaction, error) {
	if w.key == nil {
		return nil, errors.New("no account connected")
	}
	opts, err := w.transactOpts(ctx)
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(contract, contractAbi, w.backend, w.backend, w.backend)
	tx, err := bound.Transact(opts, method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to send %v", method)
	}
	log.Debug(fmt.Sprintf("Sent %v, tx: %v", method, tx.Hash().Hex()))
	return tx, nil
}

func (w *wallet) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	buffer, err := w.key.Open()
	if err != nil {
		return nil, errors.Wrap(err, "unable to open key enclave")
	}
	defer buffer.Destroy()
	key, err := crypto.ToECDSA(buffer.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "unable to restore private key")
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, w.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

func (w *wallet) AwaitReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, w.backend, tx)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get receipt of %v", tx.Hash().Hex())
	}
	return receipt, nil
}

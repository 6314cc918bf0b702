package core

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	log "github.com/inconshreveable/log15"
	"github.com/superchain-meme/launchpad/chain"
	"github.com/superchain-meme/launchpad/contracts"
	"github.com/superchain-meme/launchpad/types"
)

type Deployer interface {
	Deploy(ctx context.Context, name, symbol string) (types.Token, error)
	Account() (common.Address, bool)
}

type DeployerOption func(*deployerImpl)

// WithSaltSource replaces crypto/rand as the salt source.
func WithSaltSource(reader io.Reader) DeployerOption {
	return func(d *deployerImpl) {
		d.newSalt = func() (Salt, error) {
			return NewSalt(reader)
		}
	}
}

func WithClock(now func() time.Time) DeployerOption {
	return func(d *deployerImpl) {
		d.now = now
	}
}

func NewDeployer(wallet chain.Wallet, launchpad common.Address, network string, options ...DeployerOption) Deployer {
	d := &deployerImpl{
		wallet:       wallet,
		launchpad:    launchpad,
		network:      network,
		abi:          contracts.ABI(),
		launchConfig: contracts.DefaultLaunchConfig(),
		newSalt:      newRandomSalt,
		now:          time.Now,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

type deployerImpl struct {
	wallet       chain.Wallet
	launchpad    common.Address
	network      string
	abi          abi.ABI
	launchConfig contracts.LaunchConfig
	newSalt      func() (Salt, error)
	now          func() time.Time
}

func (d *deployerImpl) Account() (common.Address, bool) {
	return d.wallet.Account()
}

func validate(name, symbol string) error {
	if len(name) == 0 {
		return &ValidationError{Field: "name"}
	}
	if len(symbol) == 0 {
		return &ValidationError{Field: "symbol"}
	}
	return nil
}

func (d *deployerImpl) Deploy(ctx context.Context, name, symbol string) (types.Token, error) {
	name, symbol = strings.TrimSpace(name), strings.TrimSpace(symbol)
	if err := validate(name, symbol); err != nil {
		return types.Token{}, err
	}
	if _, connected := d.wallet.Account(); !connected {
		return types.Token{}, ErrWalletNotConnected
	}
	salt, err := d.newSalt()
	if err != nil {
		return types.Token{}, &SubmissionError{Err: err}
	}
	descriptor := contracts.TokenDescriptor{
		Name:     name,
		Symbol:   symbol,
		Decimals: contracts.TokenDecimals,
		Salt:     salt,
	}
	log.Debug(fmt.Sprintf("Deploying token %v (%v), salt: %v", name, symbol, salt.Hex()))
	tx, err := d.wallet.Submit(ctx, d.launchpad, d.abi, contracts.DeployMethod, descriptor, d.launchConfig)
	if err != nil {
		return types.Token{}, &SubmissionError{Err: err}
	}
	receipt, err := d.wallet.AwaitReceipt(ctx, tx)
	if err != nil {
		return types.Token{}, &SubmissionError{Err: err}
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return types.Token{}, &SubmissionError{Err: fmt.Errorf("transaction %v reverted", receipt.TxHash.Hex())}
	}
	tokenAddress, err := ExtractTokenAddress(receipt, d.launchpad, d.abi)
	if err != nil {
		return types.Token{}, err
	}
	return types.Token{
		ID:        tokenAddress.Hex(),
		Name:      name,
		Symbol:    symbol,
		Supply:    d.launchConfig.MaxSupply.String(),
		Networks:  []string{d.network},
		Timestamp: d.now(),
		Address:   tokenAddress.Hex(),
	}, nil
}

package contracts

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

const (
	// LaunchpadAddress is the deployment contract used when the config does not override it.
	LaunchpadAddress = "0x0000000000000000000000000000000000000000"

	DeployMethod       = "deployAndLaunchToken"
	TokenDeployedEvent = "TokenDeployed"

	TokenDecimals = 18
)

const LaunchpadABI = `[
  {
    "type": "function",
    "name": "deployAndLaunchToken",
    "stateMutability": "nonpayable",
    "inputs": [
      {
        "name": "tokenConfig",
        "type": "tuple",
        "components": [
          {"name": "name", "type": "string"},
          {"name": "symbol", "type": "string"},
          {"name": "decimals", "type": "uint8"},
          {"name": "salt", "type": "bytes32"}
        ]
      },
      {
        "name": "launchConfig",
        "type": "tuple",
        "components": [
          {"name": "initialPrice", "type": "uint256"},
          {"name": "reserveRatio", "type": "uint256"},
          {"name": "maxSupply", "type": "uint256"},
          {"name": "minPurchase", "type": "uint256"},
          {"name": "maxPurchase", "type": "uint256"}
        ]
      }
    ],
    "outputs": [{"name": "tokenAddress", "type": "address"}]
  },
  {
    "type": "event",
    "name": "TokenDeployed",
    "anonymous": false,
    "inputs": [
      {"indexed": true, "name": "tokenAddress", "type": "address"},
      {"indexed": false, "name": "name", "type": "string"},
      {"indexed": false, "name": "symbol", "type": "string"},
      {"indexed": false, "name": "decimals", "type": "uint8"}
    ]
  }
]`

var parsedABI = mustParseABI(LaunchpadABI)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

// ABI returns the parsed launchpad ABI.
func ABI() abi.ABI {
	return parsedABI
}

// TokenDescriptor is packed as the tokenConfig tuple.
type TokenDescriptor struct {
	Name     string
	Symbol   string
	Decimals uint8
	Salt     [32]byte
}

// LaunchConfig is packed as the launchConfig tuple. Amounts are in wei.
type LaunchConfig struct {
	InitialPrice *big.Int
	ReserveRatio *big.Int
	MaxSupply    *big.Int
	MinPurchase  *big.Int
	MaxPurchase  *big.Int
}

// DefaultLaunchConfig returns a fresh copy of the bonding curve parameters applied to
// every deployment.
func DefaultLaunchConfig() LaunchConfig {
	return LaunchConfig{
		InitialPrice: ether("0.0001"),
		ReserveRatio: big.NewInt(5000),
		MaxSupply:    ether("1000000"),
		MinPurchase:  ether("0.01"),
		MaxPurchase:  ether("10"),
	}
}

func ether(amount string) *big.Int {
	return decimal.RequireFromString(amount).Shift(TokenDecimals).BigInt()
}

func DefaultLaunchpadAddress() common.Address {
	return common.HexToAddress(LaunchpadAddress)
}

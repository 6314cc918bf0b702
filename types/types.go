package types

import (
	"time"

	"github.com/pkg/errors"
)

type Token struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	Supply    string    `json:"supply"`
	Networks  []string  `json:"networks"`
	Timestamp time.Time `json:"timestamp"`
	Address   string    `json:"address"`
}

type LaunchRequest struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type LaunchesResponse struct {
	Tokens []Token `json:"tokens"`
}

type StateResponse struct {
	Phase           string `json:"phase"`
	WalletConnected bool   `json:"walletConnected"`
	Account         string `json:"account,omitempty"`
}

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

var ErrUnsupportedVersion = errors.New("unsupported version")

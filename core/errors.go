package core

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrDeployInProgress   = errors.New("deployment already in progress")
)

type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "Please fill in all fields"
}

// SubmissionError is returned when the wallet or provider fails to send the
// deployment or to deliver a successful receipt.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("Failed to deploy token: %v", e.Err)
}

func (e *SubmissionError) Cause() error {
	return e.Err
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

type MissingEventError struct {
	TxHash common.Hash
	// empty when no matching log exists
	Reason string
}

func (e *MissingEventError) Error() string {
	if len(e.Reason) > 0 {
		return fmt.Sprintf("Could not find deployment event: %v", e.Reason)
	}
	return "Could not find deployment event"
}

package db

import (
	"github.com/superchain-meme/launchpad/types"
)

type Accessor interface {
	// AddToken puts the token in front of the list.
	AddToken(token types.Token) error
	// Tokens returns a copy of the list, most recent first.
	Tokens() ([]types.Token, error)
}

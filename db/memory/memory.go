package memory

import (
	"sync"

	"github.com/superchain-meme/launchpad/db"
	"github.com/superchain-meme/launchpad/types"
)

type accessor struct {
	mutex  sync.RWMutex
	tokens []types.Token
}

func NewAccessor() db.Accessor {
	return &accessor{}
}

func (a *accessor) AddToken(token types.Token) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	tokens := make([]types.Token, 0, len(a.tokens)+1)
	tokens = append(tokens, copyToken(token))
	a.tokens = append(tokens, a.tokens...)
	return nil
}

func (a *accessor) Tokens() ([]types.Token, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	res := make([]types.Token, len(a.tokens))
	for i, token := range a.tokens {
		res[i] = copyToken(token)
	}
	return res, nil
}

func copyToken(token types.Token) types.Token {
	token.Networks = append([]string(nil), token.Networks...)
	return token
}

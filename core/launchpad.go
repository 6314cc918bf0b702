package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	log "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/superchain-meme/launchpad/db"
	"github.com/superchain-meme/launchpad/types"
)

const maxNotifications = 10

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseConfirmed  Phase = "confirmed"
	PhaseFailed     Phase = "failed"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

type Notification struct {
	ID          string
	Kind        NotificationKind
	Title       string
	Description string
	CreatedAt   time.Time
}

type State struct {
	Phase Phase
	// PhaseConfirmed or PhaseFailed of the latest finished submission, empty before the first one
	LastOutcome     Phase
	WalletConnected bool
	Account         common.Address
}

type Result struct {
	Token types.Token
	Err   error
}

type Hook interface {
	OnTokenLaunched(token types.Token)
}

type Launchpad interface {
	// Submit validates the input and starts a deployment. The returned channel receives
	// exactly one result.
	Submit(ctx context.Context, name, symbol string) (<-chan Result, error)
	Launch(ctx context.Context, name, symbol string) (types.Token, error)
	AddToken(token types.Token) error
	Tokens() ([]types.Token, error)
	State() State
	Notifications() []Notification
	AddHook(hook Hook)
}

func NewLaunchpad(db db.Accessor, deployer Deployer) Launchpad {
	return &launchpadImpl{
		db:       db,
		deployer: deployer,
		phase:    PhaseIdle,
	}
}

type launchpadImpl struct {
	db       db.Accessor
	deployer Deployer

	mutex         sync.Mutex
	phase         Phase
	lastOutcome   Phase
	notifications []Notification
	hooks         []Hook
}

func (l *launchpadImpl) AddHook(hook Hook) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.hooks = append(l.hooks, hook)
}

func (l *launchpadImpl) Submit(ctx context.Context, name, symbol string) (<-chan Result, error) {
	if err := validate(strings.TrimSpace(name), strings.TrimSpace(symbol)); err != nil {
		l.notify(NotificationError, "Error", err.Error())
		return nil, err
	}
	if _, connected := l.deployer.Account(); !connected {
		l.notify(NotificationError, "Error", "Connect a wallet to deploy")
		return nil, ErrWalletNotConnected
	}
	l.mutex.Lock()
	if l.phase == PhaseSubmitting {
		l.mutex.Unlock()
		l.notify(NotificationError, "Error", "A deployment is already in progress")
		return nil, ErrDeployInProgress
	}
	l.phase = PhaseSubmitting
	l.mutex.Unlock()

	results := make(chan Result, 1)
	go func() {
		token, err := l.deployer.Deploy(ctx, name, symbol)
		if err == nil {
			err = l.confirm(token)
		} else {
			l.fail(name, err)
		}
		results <- Result{Token: token, Err: err}
	}()
	return results, nil
}

func (l *launchpadImpl) Launch(ctx context.Context, name, symbol string) (types.Token, error) {
	results, err := l.Submit(ctx, name, symbol)
	if err != nil {
		return types.Token{}, err
	}
	result := <-results
	return result.Token, result.Err
}

func (l *launchpadImpl) confirm(token types.Token) error {
	if err := l.AddToken(token); err != nil {
		l.fail(token.Name, err)
		return errors.Wrap(err, "unable to save token")
	}
	log.Info(fmt.Sprintf("Token %v (%v) deployed at %v", token.Name, token.Symbol, token.Address))
	l.notify(NotificationSuccess, "Success!", fmt.Sprintf("%v has been deployed at %v", token.Name, token.Address))
	l.finish(PhaseConfirmed)
	for _, hook := range l.getHooks() {
		hook.OnTokenLaunched(token)
	}
	return nil
}

func (l *launchpadImpl) fail(name string, err error) {
	log.Error(fmt.Sprintf("Unable to deploy token %v: %v", name, err))
	l.notify(NotificationError, "Error", err.Error())
	l.finish(PhaseFailed)
}

func (l *launchpadImpl) finish(outcome Phase) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.lastOutcome = outcome
	l.phase = PhaseIdle
}

func (l *launchpadImpl) getHooks() []Hook {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return append([]Hook(nil), l.hooks...)
}

func (l *launchpadImpl) AddToken(token types.Token) error {
	return l.db.AddToken(token)
}

func (l *launchpadImpl) Tokens() ([]types.Token, error) {
	return l.db.Tokens()
}

func (l *launchpadImpl) State() State {
	account, connected := l.deployer.Account()
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return State{
		Phase:           l.phase,
		LastOutcome:     l.lastOutcome,
		WalletConnected: connected,
		Account:         account,
	}
}

func (l *launchpadImpl) notify(kind NotificationKind, title, description string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.notifications = append(l.notifications, Notification{
		ID:          uuid.New().String(),
		Kind:        kind,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	})
	if len(l.notifications) > maxNotifications {
		l.notifications = l.notifications[len(l.notifications)-maxNotifications:]
	}
}

// Notifications returns the retained notifications, newest first.
func (l *launchpadImpl) Notifications() []Notification {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	res := make([]Notification, len(l.notifications))
	for i, n := range l.notifications {
		res[len(res)-1-i] = n
	}
	return res
}

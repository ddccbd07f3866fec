// Package ledgerservice manages business logic layer of the account ledger.
package ledgerservice

import (
	"context"
	"sort"

	"github.com/go-petr/pet-atm/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Option configures the ledger.
type Option func(*Service)

// WithStrictMode makes the ledger validate its inputs.
//
// It rejects duplicate account numbers, empty account numbers and PINs,
// negative initial balances and non-positive deposit or withdrawal amounts.
func WithStrictMode() Option {
	return func(s *Service) {
		s.validate = validator.New()
	}
}

// Service facilitates ledger service layer logic.
// It owns every account exclusively; the single interactive session is its only caller.
type Service struct {
	accounts map[string]*domain.Account
	validate *validator.Validate
}

// New returns the ledger built from the given account records.
func New(accounts []domain.Account, opts ...Option) *Service {
	s := &Service{accounts: make(map[string]*domain.Account, len(accounts))}

	for i := range accounts {
		a := accounts[i].Clone()
		s.accounts[a.AccountNumber] = &a
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) strict() bool {
	return s.validate != nil
}

// Create creates and returns the account.
// Outside strict mode an existing account with the same number is replaced.
func (s *Service) Create(ctx context.Context, arg domain.CreateAccountParams) (*domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if s.strict() {
		if err := s.validate.Struct(arg); err != nil {
			l.Info().Err(err).Send()
			return nil, domain.ErrInvalidParams
		}

		if _, ok := s.accounts[arg.AccountNumber]; ok {
			return nil, domain.ErrAccountAlreadyExists
		}
	}

	if _, ok := s.accounts[arg.AccountNumber]; ok {
		l.Warn().Str("account_number", arg.AccountNumber).Msg("overwriting existing account")
	}

	a := domain.NewAccount(arg)
	s.accounts[a.AccountNumber] = a

	l.Info().Str("account_number", a.AccountNumber).Msg("account created")

	return a, nil
}

// Authenticate returns the account if both the account number and the PIN match.
func (s *Service) Authenticate(ctx context.Context, accountNumber, pin string) (*domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, ok := s.accounts[accountNumber]
	if !ok || a.PIN != pin {
		l.Info().Str("account_number", accountNumber).Msg("authentication failed")
		return nil, domain.ErrAuthenticationFailed
	}

	return a, nil
}

// Deposit adds amount to the account balance.
func (s *Service) Deposit(ctx context.Context, a *domain.Account, amount float64) error {
	if err := s.validAmount(ctx, amount); err != nil {
		return err
	}

	a.Deposit(amount)

	zerolog.Ctx(ctx).Info().
		Str("account_number", a.AccountNumber).
		Float64("amount", amount).
		Msg("deposit")

	return nil
}

// Withdraw subtracts amount from the account balance.
// It returns domain.ErrInsufficientFunds if amount exceeds the balance.
func (s *Service) Withdraw(ctx context.Context, a *domain.Account, amount float64) error {
	l := zerolog.Ctx(ctx)

	if err := s.validAmount(ctx, amount); err != nil {
		return err
	}

	if !a.Withdraw(amount) {
		l.Info().
			Str("account_number", a.AccountNumber).
			Float64("amount", amount).
			Float64("balance", a.Balance).
			Msg("insufficient funds")
		return domain.ErrInsufficientFunds
	}

	l.Info().
		Str("account_number", a.AccountNumber).
		Float64("amount", amount).
		Msg("withdrawal")

	return nil
}

func (s *Service) validAmount(ctx context.Context, amount float64) error {
	if !s.strict() {
		return nil
	}

	if err := s.validate.Var(amount, "gt=0"); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		return domain.ErrInvalidAmount
	}

	return nil
}

// ChangePIN replaces the account PIN.
func (s *Service) ChangePIN(ctx context.Context, a *domain.Account, newPIN string) error {
	l := zerolog.Ctx(ctx)

	if s.strict() {
		if err := s.validate.Var(newPIN, "required"); err != nil {
			l.Info().Err(err).Send()
			return domain.ErrInvalidParams
		}
	}

	a.PIN = newPIN

	l.Info().Str("account_number", a.AccountNumber).Msg("pin changed")

	return nil
}

// Delete removes the account with the given number, if any.
func (s *Service) Delete(ctx context.Context, accountNumber string) {
	delete(s.accounts, accountNumber)

	zerolog.Ctx(ctx).Info().Str("account_number", accountNumber).Msg("account deleted")
}

// History returns the account transaction log in insertion order.
func (s *Service) History(a *domain.Account) []string {
	return a.History()
}

// Balance returns the current account balance.
func (s *Service) Balance(a *domain.Account) float64 {
	return a.Balance
}

// Accounts returns a snapshot of all accounts ordered by account number.
func (s *Service) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].AccountNumber < out[j].AccountNumber
	})

	return out
}

// Len returns the number of accounts in the ledger.
func (s *Service) Len() int {
	return len(s.accounts)
}

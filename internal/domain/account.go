// Package domain provides defenitions of all entities.
package domain

import (
	"errors"

	"github.com/go-petr/pet-atm/pkg/currencypkg"
)

var (
	// ErrAuthenticationFailed indicates that no account matches the given account number and PIN.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrInsufficientFunds indicates that the withdrawal amount exceeds the account balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAccountAlreadyExists indicates that the account with the given number already exists.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrInvalidAmount indicates a non-positive deposit or withdrawal amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidParams indicates invalid account parameters.
	ErrInvalidParams = errors.New("invalid account parameters")
)

// Transaction log entry prefixes.
const (
	DepositedPrefix = "Deposited: $"
	WithdrewPrefix  = "Withdrew: $"
)

// Account holds a single customer's balance, PIN and transaction log.
type Account struct {
	AccountNumber string
	PIN           string
	Balance       float64
	Transactions  []string
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	AccountNumber  string  `validate:"required"`
	PIN            string  `validate:"required"`
	InitialBalance float64 `validate:"gte=0"`
}

// NewAccount returns an account with an empty transaction log.
func NewAccount(arg CreateAccountParams) *Account {
	return &Account{
		AccountNumber: arg.AccountNumber,
		PIN:           arg.PIN,
		Balance:       arg.InitialBalance,
		Transactions:  []string{},
	}
}

// Deposit adds amount to the balance and records it.
func (a *Account) Deposit(amount float64) {
	a.Balance += amount
	a.Transactions = append(a.Transactions, DepositedPrefix+currencypkg.Format(amount))
}

// Withdraw subtracts amount from the balance and records it.
// It reports false and leaves the account untouched if amount exceeds the balance.
func (a *Account) Withdraw(amount float64) bool {
	if !(amount <= a.Balance) {
		return false
	}

	a.Balance -= amount
	a.Transactions = append(a.Transactions, WithdrewPrefix+currencypkg.Format(amount))

	return true
}

// History returns a copy of the transaction log in insertion order.
func (a *Account) History() []string {
	out := make([]string, len(a.Transactions))
	copy(out, a.Transactions)

	return out
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() Account {
	cp := *a
	cp.Transactions = a.History()

	return cp
}

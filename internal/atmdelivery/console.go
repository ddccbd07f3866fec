// Package atmdelivery manages the interactive console delivery layer of the ATM.
package atmdelivery

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-petr/pet-atm/internal/domain"
	"github.com/go-petr/pet-atm/pkg/currencypkg"
	"github.com/go-petr/pet-atm/pkg/logpkg"
	"github.com/rs/zerolog"
)

// Service provides ledger interface needed by the console delivery layer.
//
//go:generate mockgen -source console.go -destination console_mock.go -package atmdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (*domain.Account, error)
	Authenticate(ctx context.Context, accountNumber, pin string) (*domain.Account, error)
	Deposit(ctx context.Context, a *domain.Account, amount float64) error
	Withdraw(ctx context.Context, a *domain.Account, amount float64) error
	ChangePIN(ctx context.Context, a *domain.Account, newPIN string) error
	Delete(ctx context.Context, accountNumber string)
	History(a *domain.Account) []string
	Balance(a *domain.Account) float64
	Accounts() []domain.Account
}

// Repo provides persistence interface needed by the console delivery layer.
type Repo interface {
	Save(ctx context.Context, accounts []domain.Account) error
}

// errEndOfInput is returned by prompts once the input is exhausted.
var errEndOfInput = errors.New("end of input")

const (
	mainMenu    = "1. Create Account\n2. Login\n3. Exit"
	accountMenu = "1. Balance Inquiry\n2. Deposit\n3. Withdraw\n4. Transaction History\n5. Change PIN\n6. Delete Account\n7. Logout"
)

// Handler facilitates the console session logic.
type Handler struct {
	service Service
	repo    Repo
	in      *bufio.Scanner
	out     io.Writer
}

// NewHandler returns console handler reading commands from in and writing to out.
func NewHandler(s Service, r Repo, in io.Reader, out io.Writer) *Handler {
	return &Handler{
		service: s,
		repo:    r,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run serves the top level menu until the user exits or the input ends.
// The ledger is saved on the way out; a failed save is reported and returned.
func (h *Handler) Run(ctx context.Context) error {
	for {
		h.println("\nWelcome to the ATM")
		h.println(mainMenu)

		choice, err := h.promptChoice("Choose an option: ")
		if err == nil {
			switch choice {
			case 1:
				err = h.createAccount(ctx)
			case 2:
				err = h.login(ctx)
			case 3:
				return h.exit(ctx)
			default:
				h.println("Invalid option. Try again.")
			}
		}

		if err != nil {
			if !errors.Is(err, errEndOfInput) {
				zerolog.Ctx(ctx).Error().Err(err).Msg("cannot read input")
			}

			h.println()

			return h.exit(ctx)
		}
	}
}

func (h *Handler) exit(ctx context.Context) error {
	h.println("Thank you for using our ATM. Goodbye!")
	return h.save(ctx)
}

func (h *Handler) save(ctx context.Context) error {
	if err := h.repo.Save(ctx, h.service.Accounts()); err != nil {
		h.println("Error saving users: " + err.Error())
		return err
	}

	return nil
}

func (h *Handler) createAccount(ctx context.Context) error {
	accountNumber, err := h.prompt("Enter Account Number: ")
	if err != nil {
		return err
	}

	pin, err := h.prompt("Enter PIN: ")
	if err != nil {
		return err
	}

	balance, err := h.promptAmount("Enter Initial Balance: ")
	if err != nil {
		return err
	}

	_, err = h.service.Create(ctx, domain.CreateAccountParams{
		AccountNumber:  accountNumber,
		PIN:            pin,
		InitialBalance: balance,
	})
	if err != nil {
		h.printError(err)
		return nil
	}

	h.println("Account successfully created!")

	_ = h.save(ctx)

	return nil
}

func (h *Handler) login(ctx context.Context) error {
	accountNumber, err := h.prompt("Enter Account Number: ")
	if err != nil {
		return err
	}

	pin, err := h.prompt("Enter PIN: ")
	if err != nil {
		return err
	}

	a, err := h.service.Authenticate(ctx, accountNumber, pin)
	if err != nil {
		h.println("Authentication failed.")
		return nil
	}

	h.println("Login successful!")

	ctx = logpkg.WithSession(ctx, a.AccountNumber)
	zerolog.Ctx(ctx).Info().Msg("session started")

	err = h.accountMenu(ctx, a)

	zerolog.Ctx(ctx).Info().Msg("session ended")

	return err
}

func (h *Handler) accountMenu(ctx context.Context, a *domain.Account) error {
	for {
		h.println("\n" + accountMenu)

		choice, err := h.promptChoice("Choose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			h.println("Current Balance: $" + currencypkg.Format(h.service.Balance(a)))
		case 2:
			err = h.deposit(ctx, a)
		case 3:
			err = h.withdraw(ctx, a)
		case 4:
			h.println("Transaction History:")
			for _, entry := range h.service.History(a) {
				h.println(entry)
			}
			h.println()
		case 5:
			err = h.changePIN(ctx, a)
		case 6:
			var deleted bool

			deleted, err = h.deleteAccount(ctx, a)
			if deleted {
				return err
			}
		case 7:
			h.println("Logging out...")
			return nil
		default:
			h.println("Invalid option. Try again.")
		}

		if err != nil {
			return err
		}
	}
}

func (h *Handler) deposit(ctx context.Context, a *domain.Account) error {
	amount, err := h.promptAmount("Enter deposit amount: ")
	if err != nil {
		return err
	}

	if err := h.service.Deposit(ctx, a, amount); err != nil {
		h.printError(err)
		return nil
	}

	h.println("Deposit successful!")

	return nil
}

func (h *Handler) withdraw(ctx context.Context, a *domain.Account) error {
	amount, err := h.promptAmount("Enter withdrawal amount: ")
	if err != nil {
		return err
	}

	err = h.service.Withdraw(ctx, a, amount)
	switch {
	case err == nil:
		h.println("Withdrawal successful!")
	case errors.Is(err, domain.ErrInsufficientFunds):
		h.println("Insufficient funds!")
	default:
		h.printError(err)
	}

	return nil
}

func (h *Handler) changePIN(ctx context.Context, a *domain.Account) error {
	newPIN, err := h.prompt("Enter new PIN: ")
	if err != nil {
		return err
	}

	if err := h.service.ChangePIN(ctx, a, newPIN); err != nil {
		h.printError(err)
		return nil
	}

	h.println("PIN changed successfully!")

	return nil
}

func (h *Handler) deleteAccount(ctx context.Context, a *domain.Account) (bool, error) {
	answer, err := h.prompt("Are you sure you want to delete this account? (yes/no): ")
	if err != nil {
		return false, err
	}

	if !strings.EqualFold(answer, "yes") {
		return false, nil
	}

	h.service.Delete(ctx, a.AccountNumber)
	h.println("Account deleted successfully.")

	_ = h.save(ctx)

	return true, nil
}

// prompt writes label and returns the next input line.
func (h *Handler) prompt(label string) (string, error) {
	fmt.Fprint(h.out, label)

	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return "", err
		}

		return "", errEndOfInput
	}

	return strings.TrimSuffix(h.in.Text(), "\r"), nil
}

// promptChoice returns the menu option entered, or -1 for non-numeric input.
func (h *Handler) promptChoice(label string) (int, error) {
	line, err := h.prompt(label)
	if err != nil {
		return 0, err
	}

	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return -1, nil
	}

	return choice, nil
}

// promptAmount keeps asking until a valid amount is entered.
func (h *Handler) promptAmount(label string) (float64, error) {
	for {
		line, err := h.prompt(label)
		if err != nil {
			return 0, err
		}

		amount, err := currencypkg.ParseAmount(line)
		if err == nil {
			return amount, nil
		}

		h.println("Invalid amount.")
	}
}

func (h *Handler) printError(err error) {
	h.println("Error: " + err.Error())
}

func (h *Handler) println(a ...any) {
	fmt.Fprintln(h.out, a...)
}

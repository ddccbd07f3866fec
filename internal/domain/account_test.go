package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAccountDeposit(t *testing.T) {
	t.Parallel()

	a := NewAccount(CreateAccountParams{AccountNumber: "A1", PIN: "1234", InitialBalance: 100})

	a.Deposit(50)
	require.Equal(t, 150.0, a.Balance)

	a.Deposit(-20)
	require.Equal(t, 130.0, a.Balance)

	want := []string{"Deposited: $50.0", "Deposited: $-20.0"}
	if diff := cmp.Diff(want, a.History()); diff != "" {
		t.Errorf("History() mismatch (-want +got):\n%s", diff)
	}
}

func TestAccountWithdraw(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		balance     float64
		amount      float64
		wantOK      bool
		wantBalance float64
		wantLog     []string
	}{
		{name: "LessThanBalance", balance: 100, amount: 30, wantOK: true, wantBalance: 70, wantLog: []string{"Withdrew: $30.0"}},
		{name: "WholeBalance", balance: 20, amount: 20, wantOK: true, wantBalance: 0, wantLog: []string{"Withdrew: $20.0"}},
		{name: "InsufficientFunds", balance: 20, amount: 30, wantOK: false, wantBalance: 20, wantLog: []string{}},
		{name: "NegativeAmount", balance: 20, amount: -5, wantOK: true, wantBalance: 25, wantLog: []string{"Withdrew: $-5.0"}},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := NewAccount(CreateAccountParams{AccountNumber: "A2", PIN: "0000", InitialBalance: tc.balance})

			require.Equal(t, tc.wantOK, a.Withdraw(tc.amount))
			require.Equal(t, tc.wantBalance, a.Balance)
			require.Equal(t, tc.wantLog, a.History())
		})
	}
}

func TestAccountHistoryIsCopy(t *testing.T) {
	t.Parallel()

	a := NewAccount(CreateAccountParams{AccountNumber: "A1", PIN: "1234"})
	a.Deposit(1)

	h := a.History()
	h[0] = "tampered"

	require.Equal(t, "Deposited: $1.0", a.Transactions[0])
}

func TestAccountClone(t *testing.T) {
	t.Parallel()

	a := NewAccount(CreateAccountParams{AccountNumber: "A1", PIN: "1234", InitialBalance: 10})
	a.Deposit(5)

	cp := a.Clone()
	a.Deposit(1)
	a.PIN = "9999"

	require.Equal(t, "1234", cp.PIN)
	require.Equal(t, 15.0, cp.Balance)
	require.Len(t, cp.Transactions, 1)
}

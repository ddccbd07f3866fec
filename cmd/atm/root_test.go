package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-atm/internal/accountrepo"
	"github.com/go-petr/pet-atm/pkg/configpkg"
)

func TestRunPersistsAcrossSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	config := configpkg.Config{DataFile: "users.json"}

	var out bytes.Buffer

	first := strings.NewReader("1\nA1\n1234\n100\n2\nA1\n1234\n2\n50\n7\n3\n")
	require.NoError(t, run(ctx, config, fsys, first, &out))

	out.Reset()

	second := strings.NewReader("2\nA1\n1234\n1\n4\n7\n3\n")
	require.NoError(t, run(ctx, config, fsys, second, &out))
	require.Contains(t, out.String(), "Current Balance: $150.0")
	require.Contains(t, out.String(), "Transaction History:\nDeposited: $50.0\n")

	accounts := accountrepo.NewRepoFile(fsys, config.DataFile).Load(ctx)
	require.Len(t, accounts, 1)
	require.Equal(t, 150.0, accounts[0].Balance)
}

func TestRunCorruptFileStartsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	config := configpkg.Config{DataFile: "users.json"}

	require.NoError(t, afero.WriteFile(fsys, config.DataFile, []byte("garbage"), 0o600))

	var out bytes.Buffer

	require.NoError(t, run(ctx, config, fsys, strings.NewReader("2\nA1\n1234\n3\n"), &out))
	require.Contains(t, out.String(), "Authentication failed.")

	require.Empty(t, accountrepo.NewRepoFile(fsys, config.DataFile).Load(ctx))
}

func TestRunStrictMode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	config := configpkg.Config{DataFile: "users.json", StrictMode: true}

	var out bytes.Buffer

	in := strings.NewReader("1\nA1\n1234\n-1\n3\n")
	require.NoError(t, run(ctx, config, fsys, in, &out))
	require.Contains(t, out.String(), "Error: invalid account parameters")
}

func TestRootCmd(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "bank.json")

	var out bytes.Buffer

	cmd := newRootCmd(strings.NewReader("1\nA1\n1234\n10\n3\n"), &out)
	cmd.SetArgs([]string{"--config-dir", dir, "--data-file", dataFile})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Account successfully created!")

	accounts := accountrepo.NewRepoFile(afero.NewOsFs(), dataFile).Load(context.Background())
	require.Len(t, accounts, 1)
	require.Equal(t, "A1", accounts[0].AccountNumber)
}

func TestRootCmdSaveErrorReportedOnce(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "missing", "bank.json")

	var out, errOut bytes.Buffer

	cmd := newRootCmd(strings.NewReader("3\n"), &out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--config-dir", dir, "--data-file", dataFile, "--log-level", "disabled"})

	require.Error(t, cmd.Execute())
	require.Equal(t, 1, strings.Count(out.String(), "Error saving users: "))
	require.Empty(t, errOut.String())
}

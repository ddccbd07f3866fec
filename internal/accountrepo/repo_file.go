// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-petr/pet-atm/internal/domain"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// RepoFile keeps the whole ledger in a single file.
type RepoFile struct {
	fs   afero.Fs
	path string
}

// NewRepoFile returns account repo that reads and writes the file at path on the given filesystem.
func NewRepoFile(fsys afero.Fs, path string) *RepoFile {
	return &RepoFile{
		fs:   fsys,
		path: path,
	}
}

// Load reads all accounts from the data file.
//
// A missing, unreadable or corrupt file yields an empty result; the error is only logged.
func (r *RepoFile) Load(ctx context.Context) []domain.Account {
	l := zerolog.Ctx(ctx)

	accounts, err := r.load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Info().Str("path", r.path).Msg("no data file, starting with an empty ledger")
		} else {
			l.Warn().Err(err).Str("path", r.path).Msg("cannot load accounts, starting with an empty ledger")
		}

		return []domain.Account{}
	}

	l.Info().Str("path", r.path).Int("accounts", len(accounts)).Msg("accounts loaded")

	return accounts
}

func (r *RepoFile) load() ([]domain.Account, error) {
	f, err := r.fs.Open(r.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decode(f)
}

// Save overwrites the data file with the given accounts.
func (r *RepoFile) Save(ctx context.Context, accounts []domain.Account) (err error) {
	l := zerolog.Ctx(ctx)

	data, err := encode(accounts)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	f, err := r.fs.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		l.Error().Err(err).Str("path", r.path).Send()
		return fmt.Errorf("open %s: %w", r.path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", r.path, cerr)
		}
	}()

	if _, err = f.Write(data); err != nil {
		l.Error().Err(err).Str("path", r.path).Send()
		return fmt.Errorf("write %s: %w", r.path, err)
	}

	l.Info().Str("path", r.path).Int("accounts", len(accounts)).Msg("accounts saved")

	return nil
}

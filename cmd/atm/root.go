package main

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/go-petr/pet-atm/internal/accountrepo"
	"github.com/go-petr/pet-atm/internal/atmdelivery"
	"github.com/go-petr/pet-atm/internal/ledgerservice"
	"github.com/go-petr/pet-atm/pkg/configpkg"
	"github.com/go-petr/pet-atm/pkg/logpkg"
)

// newRootCmd returns the atm command serving an interactive session on in and out.
func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var configDir string

	cmd := &cobra.Command{
		Use:           "atm",
		Short:         "Console banking simulator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := configpkg.Load(configDir, cmd.Flags())
			if err != nil {
				log.Error().Err(err).Msg("cannot load config")
				return err
			}

			logger := logpkg.Get(config, cmd.ErrOrStderr())
			ctx := logger.WithContext(cmd.Context())

			return run(ctx, config, afero.NewOsFs(), in, out)
		},
	}

	cmd.Flags().StringVar(&configDir, "config-dir", "./configs", "directory holding the optional app.env config file")
	cmd.Flags().String("data-file", "users.json", "file the ledger is persisted to")
	cmd.Flags().Bool("strict", false, "reject duplicate accounts and non-positive amounts")
	cmd.Flags().String("log-level", "warn", "log level (trace, debug, info, warn, error)")

	cmd.SetIn(in)
	cmd.SetOut(out)

	return cmd
}

// run loads the ledger, serves one console session and saves the ledger on exit.
func run(ctx context.Context, config configpkg.Config, fsys afero.Fs, in io.Reader, out io.Writer) error {
	repo := accountrepo.NewRepoFile(fsys, config.DataFile)

	var opts []ledgerservice.Option
	if config.StrictMode {
		opts = append(opts, ledgerservice.WithStrictMode())
	}

	ledger := ledgerservice.New(repo.Load(ctx), opts...)

	return atmdelivery.NewHandler(ledger, repo, in, out).Run(ctx)
}

// internal/wire/wire.go
package wire

import (
	"fmt"
	"slices"
	"strings"

	"storefront/internal/adaptor"
	"storefront/internal/data/repository"
	"storefront/internal/usecase"
	"storefront/pkg/apperr"
	"storefront/pkg/middleware"
	"storefront/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the wired command tree and its dependencies
type App struct {
	Root    *cobra.Command
	Options *adaptor.Options
	Service *usecase.Service
}

// Wiring builds services, handlers and the command tree
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)

	opts := &adaptor.Options{
		ConfigPath: utils.DefaultConfigPath,
		Format:     config.App.OutputFormat,
	}
	handler := adaptor.NewHandler(service, opts, logger)

	root := setupRoot(handler, service, opts, config, logger)

	return &App{
		Root:    root,
		Options: opts,
		Service: service,
	}
}

func setupRoot(
	handler *adaptor.Handler,
	service *usecase.Service,
	opts *adaptor.Options,
	config *utils.Config,
	logger *zap.Logger,
) *cobra.Command {
	root := newRootCommand(opts, config)

	// Applied to every command
	g := guards{
		base: []middleware.Middleware{
			middleware.Logger(logger),
			middleware.Recover(logger),
		},
		auth:   middleware.AuthSession(service.Auth, credentials(opts, config.Session), logger),
		admin:  middleware.Admin(logger),
		client: middleware.Client(logger),
	}

	wireAuth(root, handler.Auth, g)
	wireProduct(root, handler.Product, g)
	wireOrder(root, handler.Order, g)

	return root
}

func newRootCommand(opts *adaptor.Options, config *utils.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Shared product catalog and order ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Format = strings.ToLower(opts.Format)
			if !slices.Contains(utils.ValidFormats, opts.Format) {
				return apperr.InvalidField("format",
					fmt.Sprintf("Must be one of: %s", strings.Join(utils.ValidFormats, " ")))
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "path to the env config file")
	flags.StringVar(&opts.Format, "format", opts.Format, "output format: text or json")
	flags.StringVarP(&opts.Username, "user", "u", "", "username for guarded commands (or STOREFRONT_USER)")
	flags.StringVarP(&opts.Password, "password", "p", "", "password for guarded commands (or STOREFRONT_PASSWORD)")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperr.InvalidField("flags", err.Error())
	})

	return root
}

// credentials prefers flags and falls back to the configured session.
func credentials(opts *adaptor.Options, session utils.SessionConfig) middleware.CredentialsFunc {
	return func(cmd *cobra.Command) (string, string) {
		username, password := opts.Username, opts.Password
		if username == "" {
			username = session.Username
		}
		if password == "" {
			password = session.Password
		}
		return username, password
	}
}

// guards composes the middleware stacks used by the command groups.
type guards struct {
	base   []middleware.Middleware
	auth   middleware.Middleware
	admin  middleware.Middleware
	client middleware.Middleware
}

func (g guards) with(h middleware.HandlerFunc, mws ...middleware.Middleware) middleware.HandlerFunc {
	return middleware.Chain(h, slices.Concat(g.base, mws)...)
}

func (g guards) public(h middleware.HandlerFunc) middleware.HandlerFunc {
	return g.with(h)
}

func (g guards) authenticated(h middleware.HandlerFunc) middleware.HandlerFunc {
	return g.with(h, g.auth)
}

func (g guards) adminOnly(h middleware.HandlerFunc) middleware.HandlerFunc {
	return g.with(h, g.auth, g.admin)
}

func (g guards) clientOnly(h middleware.HandlerFunc) middleware.HandlerFunc {
	return g.with(h, g.auth, g.client)
}

// exactArgs reports a wrong argument count as a validation failure.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return apperr.InvalidField("args", err.Error())
		}
		return nil
	}
}

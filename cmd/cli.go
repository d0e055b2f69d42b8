package cmd

import (
	"context"
	"io"

	"storefront/internal/adaptor"
	"storefront/internal/wire"
	"storefront/pkg/utils"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, app *wire.App, args []string, logger *zap.Logger) int {
	app.Root.SetArgs(args)

	err := app.Root.ExecuteContext(ctx)
	return adaptor.HandleError(app.Root.OutOrStdout(), app.Options.Format, err, logger)
}

// ConfigPath picks --config out of args before the command tree exists.
// Every other flag is ignored.
func ConfigPath(args []string) string {
	fs := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	path := fs.String("config", utils.DefaultConfigPath, "")
	_ = fs.Parse(args)
	return *path
}

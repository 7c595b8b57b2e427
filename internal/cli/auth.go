package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/mood/internal/domain"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage write access to record scopes",
		Long: `Records are written under a scope: momentary emotions under
mindful_session, daily moods and states of mind under state_of_mind.
A scope must be granted before records can be saved to it.

Without scope arguments every scope is affected.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "grant [scope...]",
			Short: "Request authorization for scopes",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAuth(cmd, args, func(ctx context.Context, app *AppContext, scope domain.Scope) (string, error) {
					granted, err := app.Service.RequestAuthorization(ctx, scope)
					if err != nil {
						return "", err
					}
					if !granted {
						return "denied", nil
					}
					return "granted", nil
				})
			},
		},
		&cobra.Command{
			Use:   "revoke [scope...]",
			Short: "Revoke authorization for scopes",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAuth(cmd, args, func(ctx context.Context, app *AppContext, scope domain.Scope) (string, error) {
					if err := app.Service.Revoke(ctx, scope); err != nil {
						return "", err
					}
					return "revoked", nil
				})
			},
		},
		&cobra.Command{
			Use:   "status [scope...]",
			Short: "Show authorization status",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAuth(cmd, args, func(ctx context.Context, app *AppContext, scope domain.Scope) (string, error) {
					ok, err := app.Service.IsAuthorized(ctx, scope)
					if err != nil {
						return "", err
					}
					if ok {
						return "granted", nil
					}
					return "not granted", nil
				})
			},
		},
	)
	return cmd
}

type authAction func(ctx context.Context, app *AppContext, scope domain.Scope) (string, error)

func runAuth(cmd *cobra.Command, args []string, action authAction) error {
	scopes := domain.AllScopes()
	if len(args) > 0 {
		var err error
		if scopes, err = parseScopes(args); err != nil {
			return err
		}
	}

	ctx := context.Background()
	app, err := NewAppContext(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	for _, scope := range scopes {
		status, err := action(ctx, app, scope)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", scope, status)
	}
	return nil
}

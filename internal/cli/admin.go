package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewEnsureAdminCommand seeds the admin login from ADMIN_USERNAME and
// ADMIN_PASSWORD when no admin exists.
func NewEnsureAdminCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-admin",
		Short: "Create the admin login if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDeps(cmd, func(ctx context.Context, d *Deps) error {
				created, err := d.Auth.EnsureAdmin(ctx, d.AdminUsername, d.AdminPassword)
				if err != nil {
					return err
				}

				text := "Admin login already exists."
				if created {
					text = fmt.Sprintf("Admin login %q created.", d.AdminUsername)
				}
				out := map[string]any{"username": d.AdminUsername, "created": created}
				return render(cmd.OutOrStdout(), opts.Format, out, text)
			})
		},
	}
}

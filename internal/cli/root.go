package cli

import (
	"context"
	"fmt"
	"slices"

	"go-payroll/internal/auth"
	"go-payroll/internal/bulk"
	"go-payroll/internal/domain"
	"go-payroll/internal/payroll"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"

	load Loader
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// Deps are the services payrollctl drives. Close releases whatever the loader
// opened.
type Deps struct {
	Payroll payroll.Service
	Bulk    bulk.Service
	Auth    auth.Service

	AdminUsername string
	AdminPassword string

	Close func()
}

// Loader opens the services on first use, so --help needs no database.
type Loader func(ctx context.Context) (*Deps, error)

// operator is the principal every command acts as. Anyone with shell access
// to the deployment is an administrator.
var operator = domain.Principal{Username: "payrollctl", Role: domain.RoleAdmin}

// NewRootCommand creates the root command for payrollctl.
func NewRootCommand(load Loader) *cobra.Command {
	opts := &RootOptions{load: load}

	cmd := &cobra.Command{
		Use:   "payrollctl",
		Short: "Payroll maintenance from the command line",
		Long:  "Import, export, reconcile and render payroll data directly against the payroll database.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewMergeDuplicatesCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewPayslipCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewEnsureAdminCommand(opts))

	return cmd
}

// withDeps loads the services, runs fn and closes them again.
func (o *RootOptions) withDeps(cmd *cobra.Command, fn func(ctx context.Context, d *Deps) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := o.load(ctx)
	if err != nil {
		return err
	}
	if d.Close != nil {
		defer d.Close()
	}
	return fn(ctx, d)
}

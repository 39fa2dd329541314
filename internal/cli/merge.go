package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type mergeOutput struct {
	Policy  string `json:"policy" yaml:"policy"`
	Groups  int    `json:"groups" yaml:"groups"`
	Removed int    `json:"removed" yaml:"removed"`
}

// NewMergeDuplicatesCommand collapses payroll rows sharing an employee and period.
func NewMergeDuplicatesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "merge-duplicates",
		Short: "Merge payroll rows that share an employee and pay period",
		Long: `Merge payroll rows that share an employee and pay period.

The merge policy comes from PAYROLL_MERGE_POLICY: "sum" adds the amounts and
joins the notes, "latest" keeps the newest row. Runs in one transaction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDeps(cmd, func(ctx context.Context, d *Deps) error {
				res, err := d.Payroll.MergeDuplicates(ctx, operator)
				if err != nil {
					return err
				}
				out := mergeOutput{Policy: string(res.Policy), Groups: res.Groups, Removed: res.Removed}
				text := "No duplicates found."
				if res.Removed > 0 {
					text = fmt.Sprintf("Merged %d duplicate group(s), removed %d row(s) (policy %s).", res.Groups, res.Removed, res.Policy)
				}
				return render(cmd.OutOrStdout(), opts.Format, out, text)
			})
		},
	}
}

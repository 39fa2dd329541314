package cli

import (
	"context"
	"fmt"
	"os"

	"go-payroll/internal/payroll"

	"github.com/spf13/cobra"
)

func lookupPayroll(ctx context.Context, d *Deps, args []string) (payroll.PayrollResponse, error) {
	return d.Payroll.GetByKey(ctx, operator, payroll.PayrollKeyRequest{
		EmployeeID:  args[0],
		PeriodStart: args[1],
		PeriodEnd:   args[2],
	})
}

// NewPayslipCommand renders one payslip PDF to disk.
func NewPayslipCommand(opts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "payslip <emp_id> <period_start> <period_end>",
		Short: "Render the payslip PDF of one pay period",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDeps(cmd, func(ctx context.Context, d *Deps) error {
				rec, err := lookupPayroll(ctx, d, args)
				if err != nil {
					return err
				}
				slip, err := d.Payroll.RenderPayslip(ctx, operator, rec.ID)
				if err != nil {
					return err
				}

				path := output
				if path == "" {
					path = slip.Filename
				}
				if err := os.WriteFile(path, slip.Content, 0o644); err != nil {
					return err
				}

				out := map[string]any{"file": path, "net": slip.Totals.Net.StringFixed(2)}
				return render(cmd.OutOrStdout(), opts.Format, out, fmt.Sprintf("Wrote %s (net %s).", path, payroll.FormatPeso(slip.Totals.Net)))
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default payslip_<emp>_<start>_<end>.pdf)")
	return cmd
}

type summaryOutput struct {
	PayrollID       uint                   `json:"payroll_id" yaml:"payroll_id"`
	EmployeeID      string                 `json:"emp_id" yaml:"emp_id"`
	PeriodStart     string                 `json:"period_start" yaml:"period_start"`
	PeriodEnd       string                 `json:"period_end" yaml:"period_end"`
	Gross           string                 `json:"gross" yaml:"gross"`
	TotalDeductions string                 `json:"total_deductions" yaml:"total_deductions"`
	Net             string                 `json:"net" yaml:"net"`
	NegativeNet     bool                   `json:"negative_net,omitempty" yaml:"negative_net,omitempty"`
	Display         payroll.SummaryDisplay `json:"display" yaml:"display"`
}

// NewSummaryCommand prints gross, deductions and net of one pay period. The
// output is YAML unless --format json is given.
func NewSummaryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <emp_id> <period_start> <period_end>",
		Short: "Print the pay summary of one pay period",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDeps(cmd, func(ctx context.Context, d *Deps) error {
				rec, err := lookupPayroll(ctx, d, args)
				if err != nil {
					return err
				}
				sum, err := d.Payroll.GetSummary(ctx, operator, rec.ID)
				if err != nil {
					return err
				}

				out := summaryOutput{
					PayrollID:       sum.PayrollID,
					EmployeeID:      sum.EmployeeID,
					PeriodStart:     sum.PeriodStart,
					PeriodEnd:       sum.PeriodEnd,
					Gross:           sum.Gross.StringFixed(2),
					TotalDeductions: sum.TotalDeductions.StringFixed(2),
					Net:             sum.Net.StringFixed(2),
					NegativeNet:     sum.NegativeNet,
					Display:         sum.Display,
				}
				format := opts.Format
				if format != "json" {
					format = "yaml"
				}
				return render(cmd.OutOrStdout(), format, out, "")
			})
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go-payroll/internal/bulk"

	"github.com/spf13/cobra"
)

const (
	kindEmployees = "employees"
	kindPayroll   = "payroll"
)

// NewImportCommand loads a CSV/XLSX/XLS file the same way the upload endpoints do.
func NewImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "import <employees|payroll> <file>",
		Short:     "Import employees or payroll from a CSV, XLSX or XLS file",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{kindEmployees, kindPayroll},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, path := args[0], args[1]
			if kind != kindEmployees && kind != kindPayroll {
				return fmt.Errorf("unknown import kind %q: must be employees or payroll", kind)
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			return opts.withDeps(cmd, func(ctx context.Context, d *Deps) error {
				opts.verbosef(cmd.ErrOrStderr(), "importing %s from %s", kind, path)

				var (
					res bulk.ImportResponse
					err error
				)
				if kind == kindEmployees {
					res, err = d.Bulk.ImportEmployees(ctx, operator, filepath.Base(path), f)
				} else {
					res, err = d.Bulk.ImportPayrolls(ctx, operator, filepath.Base(path), f)
				}
				if err != nil {
					return err
				}

				text := fmt.Sprintf("Imported %d %s row(s), %d upserted.", res.Received, res.Kind, res.Upserted)
				if res.Superseded > 0 {
					text += fmt.Sprintf(" %d row(s) overwritten by a later row.", res.Superseded)
				}
				return render(cmd.OutOrStdout(), opts.Format, res, text)
			})
		},
	}
}

// exportName picks the export by kind and the target file's extension.
func exportName(kind, path string) (string, error) {
	switch kind {
	case kindEmployees:
		return bulk.ExportEmployees, nil
	case kindPayroll:
		if strings.EqualFold(filepath.Ext(path), ".xlsx") {
			return bulk.ExportPayrollXLSX, nil
		}
		return bulk.ExportPayrollCSV, nil
	}
	return "", fmt.Errorf("unknown export kind %q: must be employees or payroll", kind)
}

// NewExportCommand writes the employees or payroll backup to a file.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <employees|payroll> <file>",
		Short: "Export employees or payroll; payroll to .xlsx writes the report workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, path := args[0], args[1]
			name, err := exportName(kind, path)
			if err != nil {
				return err
			}

			return opts.withDeps(cmd, func(ctx context.Context, d *Deps) error {
				file, err := d.Bulk.Export(ctx, operator, name)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, file.Data, 0o644); err != nil {
					return err
				}

				out := map[string]any{"file": path, "bytes": len(file.Data)}
				return render(cmd.OutOrStdout(), opts.Format, out, fmt.Sprintf("Wrote %s (%d bytes).", path, len(file.Data)))
			})
		},
	}
}

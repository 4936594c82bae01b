package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/code19m/errx"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/common/expfmt"
	"github.com/samber/lo"

	"github.com/rise-and-shine/decorators/showcase"
)

const codeInvalidOutput = "INVALID_OUTPUT"

func (a *app) render(out io.Writer, title string, reports []showcase.Report) error {
	switch format := a.v.GetString("output"); format {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errx.Wrap(enc.Encode(reports))

	case outputTable:
		color.New(color.FgCyan, color.Bold).Fprintf(out, "== %s ==\n", title) //nolint:errcheck // best effort header

		if len(reports) == 0 {
			_, err := fmt.Fprintln(out, "No scenarios finished")
			return errx.Wrap(err)
		}

		table := tablewriter.NewWriter(out)
		table.Header("Scenario", "Operation", "Result", "Calls")
		rows := lo.Map(reports, func(r showcase.Report, _ int) []any {
			return []any{r.Scenario, r.Operation, formatResult(r.Result), r.Calls}
		})
		for _, row := range rows {
			if err := table.Append(row...); err != nil {
				return errx.Wrap(err)
			}
		}
		return errx.Wrap(table.Render())

	default:
		return errx.New("[cmd]: unknown output format",
			errx.WithCode(codeInvalidOutput),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"output": format}),
		)
	}
}

func formatResult(result any) string {
	if result == nil {
		return "-"
	}
	return fmt.Sprintf("%v", result)
}

// printMetrics writes the gathered metrics in the Prometheus text format when
// --metrics is set.
func (a *app) printMetrics(out io.Writer) error {
	if !a.v.GetBool("metrics") {
		return nil
	}

	families, err := a.registry.Gather()
	if err != nil {
		return errx.Wrap(err)
	}

	enc := expfmt.NewEncoder(out, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err = enc.Encode(mf); err != nil {
			return errx.Wrap(err)
		}
	}
	return nil
}

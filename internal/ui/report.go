package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lfreitas/divan/internal/report"
	"github.com/lfreitas/divan/internal/store"
	"github.com/lfreitas/divan/internal/timeutil"
)

func (a *App) reportCmd() *cobra.Command {
	var (
		weekOf  string
		insight bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Weekly attendance report",
		Long: `Summarize a week's appointments: attendance, no-shows, cancellations
and estimated revenue.

With --insight and a configured LLM provider, a short commentary on the
numbers is generated.`,
		Example: `  divan report
  divan report --week=2025-04-07 --insight`,
		RunE: func(_ *cobra.Command, _ []string) error {
			professionalID, err := a.requireLogin()
			if err != nil {
				return err
			}

			week := time.Now()
			if weekOf != "" {
				parsed, err := timeutil.ParseDate(weekOf)
				if err != nil {
					return fmt.Errorf("data inválida %q: %w", weekOf, err)
				}
				week = parsed
			}

			opts := report.Options{
				WeekOf:         week,
				IncludeInsight: insight,
				Provider:       a.config.LLM.Provider,
				Model:          a.config.LLM.Model,
				BaseURL:        a.config.LLM.BaseURL,
			}

			records := store.NewConfirmationStore(a.kv)
			r, err := report.BuildWeekReport(context.Background(), a.remote, records, professionalID, opts)
			if err != nil {
				return err
			}

			printWeekReport(r)
			return nil
		},
	}

	cmd.Flags().StringVar(&weekOf, "week", "", "Any date inside the week (YYYY-MM-DD, default: this week)")
	cmd.Flags().BoolVar(&insight, "insight", false, "Generate an LLM commentary on the numbers")
	return cmd
}

func printWeekReport(r *report.WeekReport) {
	fmt.Println(formatHeader(fmt.Sprintf("Semana de %s a %s",
		r.Start.Format("02/01/2006"), r.End.Format("02/01/2006"))))
	fmt.Printf("  Consultas agendadas: %d\n", r.Total)
	fmt.Printf("  Comparecimentos:     %s\n", formatConfirmed(fmt.Sprintf("%d", r.Confirmed)))
	fmt.Printf("  Faltas:              %s\n", formatNoShow(fmt.Sprintf("%d", r.NoShows)))
	fmt.Printf("  Sem confirmação:     %s\n", formatPending(fmt.Sprintf("%d", r.Unconfirmed)))
	fmt.Printf("  Cancelamentos:       %d\n", r.Cancelled)
	fmt.Printf("  Receita estimada:    R$ %.2f\n", r.Revenue)

	if r.Insight != "" {
		fmt.Println()
		printInsightWrapped(r.Insight, termWidth())
	}
}

package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lfreitas/divan/internal/schedule"
	"github.com/lfreitas/divan/internal/timeutil"
)

func (a *App) agendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Manage availability windows",
	}
	cmd.AddCommand(a.agendaAddCmd())
	cmd.AddCommand(a.agendaListCmd())
	cmd.AddCommand(a.agendaDeleteCmd())
	return cmd
}

func (a *App) agendaAddCmd() *cobra.Command {
	var (
		dates    []string
		start    string
		end      string
		interval int
		times    []string
		policy   int
		price    float64
		obs      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish availability for one or more days",
		Long: `Publish an availability window for each given date.

With --start/--end/--interval the day is divided into fixed slots. With
--times the given hours are offered as-is instead.`,
		Example: `  divan agenda add --date=2025-04-10 --start=08:00 --end=18:00 --interval=50
  divan agenda add --date=2025-04-10 --date=2025-04-11 --times=09:00,14:00,16:00`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := a.requireLogin(); err != nil {
				return err
			}

			form := schedule.Form{
				Start:                  start,
				End:                    end,
				Controlled:             len(times) == 0,
				CustomTimes:            times,
				IntervalMinutes:        interval,
				CancellationPolicyDays: policy,
				Observation:            obs,
			}
			if price > 0 {
				form.AveragePrice = &price
			}
			for _, d := range dates {
				parsed, err := timeutil.ParseDate(d)
				if err != nil {
					return fmt.Errorf("data inválida %q: %w", d, err)
				}
				form.Dates = append(form.Dates, parsed)
			}

			if problems := form.Validate(); len(problems) > 0 {
				return fmt.Errorf("formulário inválido:\n  - %s", strings.Join(problems, "\n  - "))
			}

			result, err := schedule.BuildCreateRecords(form, time.Now())
			if err != nil {
				return err
			}

			if err := a.remote.CreateSchedules(context.Background(), result.Records); err != nil {
				return fmt.Errorf("publishing schedules: %w", err)
			}

			fmt.Printf("%d dia(s) publicado(s).\n", len(result.Records))
			for _, skipped := range result.Skipped {
				fmt.Printf("  %s ignorado: data já passou.\n", formatMuted(skipped.Format("02/01/2006")))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&dates, "date", nil, "Date to publish (YYYY-MM-DD, repeatable)")
	cmd.Flags().StringVar(&start, "start", "", "Window start (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Window end (HH:MM)")
	cmd.Flags().IntVar(&interval, "interval", 50, "Slot length in minutes")
	cmd.Flags().StringSliceVar(&times, "times", nil, "Explicit slot times instead of a window (HH:MM, comma-separated)")
	cmd.Flags().IntVar(&policy, "cancel-policy", 1, "Cancellation policy in days")
	cmd.Flags().Float64Var(&price, "price", 0, "Average session price")
	cmd.Flags().StringVar(&obs, "obs", "", "Observation shown to patients")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func (a *App) agendaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List published availability",
		RunE: func(_ *cobra.Command, _ []string) error {
			professionalID, err := a.requireLogin()
			if err != nil {
				return err
			}

			records, err := a.remote.ListSchedules(context.Background(), professionalID)
			if err != nil {
				return fmt.Errorf("listing schedules: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("Nenhuma disponibilidade publicada.")
				return nil
			}

			sort.Slice(records, func(i, j int) bool {
				return records[i].InitialTime.Date().Before(records[j].InitialTime.Date())
			})

			for _, r := range records {
				s := schedule.FromRecord(r)
				slots, _ := s.Slots()
				fmt.Printf("%s  %s  %s-%s  %d horário(s)  %s\n",
					formatMuted(s.ID),
					formatHeader(s.Date.Format("02/01/2006")),
					s.Start, s.End,
					len(slots),
					formatMuted(s.Observation),
				)
			}
			return nil
		},
	}
}

func (a *App) agendaDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [schedule-id]",
		Short: "Remove a published day",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, err := a.requireLogin(); err != nil {
				return err
			}
			if err := a.remote.DeleteSchedule(context.Background(), args[0]); err != nil {
				return fmt.Errorf("deleting schedule: %w", err)
			}
			fmt.Println("Disponibilidade removida.")
			return nil
		},
	}
}

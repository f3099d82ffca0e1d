package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lfreitas/divan/internal/appointment"
)

func (a *App) confirmCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "confirm [scheduling-id]",
		Short: "Confirm a past appointment",
		Long: `Record that the patient attended a past appointment.

With --all, every appointment currently pending confirmation is confirmed;
failures are reported individually and the failed ones stay pending.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			tracker, err := a.pendingTracker(ctx)
			if err != nil {
				return err
			}

			if all {
				res := tracker.ConfirmAll(ctx)
				fmt.Printf("%d consulta(s) confirmada(s).\n", res.Confirmed)
				for _, id := range res.Failed {
					fmt.Printf("  %s falhou e continua pendente.\n", formatNoShow(id))
				}
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("informe o id da consulta ou use --all")
			}
			return a.decide(ctx, tracker, args[0], appointment.ActionConfirmed)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Confirm every pending appointment")
	return cmd
}

func (a *App) noshowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "noshow [scheduling-id]",
		Short: "Record a missed appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx := context.Background()
			tracker, err := a.pendingTracker(ctx)
			if err != nil {
				return err
			}
			return a.decide(ctx, tracker, args[0], appointment.ActionNoShow)
		},
	}
}

func (a *App) pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List appointments awaiting confirmation",
		RunE: func(_ *cobra.Command, _ []string) error {
			tracker, err := a.pendingTracker(context.Background())
			if err != nil {
				return err
			}

			pending := tracker.Pending()
			if len(pending) == 0 {
				fmt.Println("Nenhuma consulta pendente de confirmação.")
				return nil
			}

			now := time.Now()
			fmt.Printf("%d consulta(s) aguardando confirmação:\n", len(pending))
			for _, appt := range pending {
				name := appt.PatientName
				if name == "" {
					name = appt.PatientID
				}
				passed := appointment.FormatTimePassed(appt.MinutesPassed(now))
				fmt.Printf("  %s %s  %-24s %s  %s\n",
					appt.Date.Format("02/01"), appt.Hour, name,
					formatMuted(appt.ID),
					formatPending("há "+passed))
			}
			return nil
		},
	}
}

// pendingTracker loads today's appointments so the tracker has a current
// pending set to act on.
func (a *App) pendingTracker(ctx context.Context) (*appointment.Tracker, error) {
	_, tracker, err := a.loadDay(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	return tracker, nil
}

func (a *App) decide(ctx context.Context, tracker *appointment.Tracker, id string, action appointment.Action) error {
	var err error
	if action == appointment.ActionNoShow {
		err = tracker.NoShow(ctx, id)
	} else {
		err = tracker.Confirm(ctx, id)
	}
	if errors.Is(err, appointment.ErrNotPending) {
		return fmt.Errorf("consulta %s não está pendente de confirmação", id)
	}
	if err != nil {
		return err
	}

	if action == appointment.ActionNoShow {
		fmt.Println("Falta registrada.")
	} else {
		fmt.Println("Presença confirmada.")
	}
	return nil
}

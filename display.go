package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/chrisng16/waitlist/internal/client"
	"github.com/chrisng16/waitlist/internal/display"
	"github.com/chrisng16/waitlist/internal/dto"
	"github.com/spf13/cobra"
)

var (
	displayLoginID  string
	displayPasscode string
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Sign a store display in and follow its queue until interrupted",
	RunE:  runDisplay,
}

func init() {
	displayCmd.Flags().StringVar(&displayLoginID, "store-login-id", "", "store login id")
	displayCmd.Flags().StringVar(&displayPasscode, "passcode", "", "store passcode")
	_ = displayCmd.MarkFlagRequired("store-login-id")
	_ = displayCmd.MarkFlagRequired("passcode")
}

func runDisplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout})
	session := display.NewSession(api, cfg.PollInterval)
	session.OnQueueUpdate(logQueue)

	if _, err := session.Login(ctx, displayLoginID, displayPasscode); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	<-ctx.Done()
	slog.Warn("signal received, signing out")

	if err := session.SignOut(context.Background(), displayPasscode); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func logQueue(entries []dto.QueueEntryResponse) {
	slog.Info("queue updated", "component", "display", "parties", len(entries))
	for _, e := range entries {
		slog.Info("queue entry", "component", "display",
			"place", e.Place, "name", e.Name, "party_size", e.PartySize, "status", e.Status)
	}
}

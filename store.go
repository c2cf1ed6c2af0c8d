package main

import (
	"fmt"
	"log/slog"

	"github.com/chrisng16/waitlist/internal/repository"
	"github.com/chrisng16/waitlist/internal/service"
	"github.com/chrisng16/waitlist/pkg/database"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage stores",
}

var (
	storeName        string
	storeDescription string
	storePasscode    string
)

var storeCreateCmd = &cobra.Command{
	Use:   "create <store-login-id>",
	Short: "Register a store with its waitlist closed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := storeService()
		if err != nil {
			return err
		}
		store, err := svc.CreateStore(cmd.Context(), args[0], storeName, storeDescription, storePasscode)
		if err != nil {
			return err
		}
		slog.Info("store created", "store_id", store.ID, "store_login_id", store.LoginID)
		fmt.Println(store.ID)
		return nil
	},
}

var storeOpenCmd = &cobra.Command{
	Use:   "open <store-login-id>",
	Short: "Start accepting waitlist entries",
	Args:  cobra.ExactArgs(1),
	RunE:  setActive(true),
}

var storeCloseCmd = &cobra.Command{
	Use:   "close <store-login-id>",
	Short: "Stop accepting waitlist entries",
	Args:  cobra.ExactArgs(1),
	RunE:  setActive(false),
}

func init() {
	storeCreateCmd.Flags().StringVar(&storeName, "name", "", "store name")
	storeCreateCmd.Flags().StringVar(&storeDescription, "description", "", "store description")
	storeCreateCmd.Flags().StringVar(&storePasscode, "passcode", "", "passcode required to sign the display in and out")
	_ = storeCreateCmd.MarkFlagRequired("name")
	_ = storeCreateCmd.MarkFlagRequired("passcode")

	storeCmd.AddCommand(storeCreateCmd, storeOpenCmd, storeCloseCmd)
}

func setActive(active bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := storeService()
		if err != nil {
			return err
		}
		store, err := svc.SetWaitlistActive(cmd.Context(), args[0], active)
		if err != nil {
			return err
		}
		slog.Info("store updated", "store_login_id", store.LoginID, "is_waitlist_active", store.IsWaitlistActive)
		return nil
	}
}

func storeService() (service.StoreService, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	return service.NewStoreService(repository.NewStoreRepository(db)), nil
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/app"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/config"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/model"
)

var seedFile string

// seedFixture is the JSON layout of a seed file.
type seedFixture struct {
	Vehicles     []model.Vehicle     `json:"vehicles"`
	Reservations []model.Reservation `json:"reservations"`
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a vehicle/reservation fixture into the configured backend",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "seed.json", "fixture file")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	data, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var fixture seedFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("decode fixture: %w", err)
	}

	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "service close: %v\n", cerr)
		}
	}()

	if err := svc.Seed(ctx, fixture.Vehicles, fixture.Reservations); err != nil {
		return err
	}
	fmt.Printf("seeded %d vehicles, %d reservations\n", len(fixture.Vehicles), len(fixture.Reservations))
	return nil
}

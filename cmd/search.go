package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/app"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/config"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/model"
)

var (
	searchRequester string
	searchLat       float64
	searchLon       float64
	searchMaxDist   float64
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a one-shot search against the configured backend",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchRequester, "requester", "", "requester identifier")
	searchCmd.Flags().Float64Var(&searchLat, "latitude", 0, "query latitude in degrees")
	searchCmd.Flags().Float64Var(&searchLon, "longitude", 0, "query longitude in degrees")
	searchCmd.Flags().Float64Var(&searchMaxDist, "max-distance", 0, "maximum distance in km")
	if err := searchCmd.MarkFlagRequired("requester"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
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

	req := model.SearchRequest{RequesterID: searchRequester}
	if cmd.Flags().Changed("latitude") || cmd.Flags().Changed("longitude") {
		req.Latitude = &searchLat
		req.Longitude = &searchLon
	}
	if cmd.Flags().Changed("max-distance") {
		req.MaxDistanceKm = &searchMaxDist
	}
	if err := req.Validate(); err != nil {
		return err
	}

	profile, err := svc.Analyzer.Analyze(ctx, req.RequesterID)
	if err != nil {
		return err
	}
	result, err := svc.Matcher.Search(ctx, profile, req)
	if err != nil {
		return err
	}
	for _, m := range result.Matches {
		if m.DistanceKm != nil {
			fmt.Printf("%s\t%s\t%.2f\t%d seats\t%.1f km\n",
				m.Vehicle.ID, m.Vehicle.Category, m.Vehicle.Price, m.Vehicle.Seats, *m.DistanceKm)
			continue
		}
		fmt.Printf("%s\t%s\t%.2f\t%d seats\n",
			m.Vehicle.ID, m.Vehicle.Category, m.Vehicle.Price, m.Vehicle.Seats)
	}
	return nil
}

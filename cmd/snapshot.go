package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/flightdeck/internal/telemetry"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot-example",
	Short: "Print an example telemetry snapshot",
	Long: `Print a complete example of the snapshot file a collector writes.

Save it, point telemetry.snapshot_path (or --snapshot) at it and every
panel shows values instead of placeholders:

  flightdeck snapshot-example > ~/.config/flightdeck/snapshot.yaml
  flightdeck --snapshot ~/.config/flightdeck/snapshot.yaml`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeExampleSnapshot(cmd.OutOrStdout(), time.Now().UTC().Truncate(time.Second))
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

func writeExampleSnapshot(w io.Writer, now time.Time) error {
	data, err := telemetry.MarshalSnapshot(exampleSnapshot(now))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}

func exampleSnapshot(now time.Time) telemetry.Snapshot {
	band := func(v float64) *float64 { return &v }
	series := func(values ...float64) []telemetry.Point {
		out := make([]telemetry.Point, len(values))
		start := now.Add(-time.Duration(len(values)-1) * time.Hour)
		for i, v := range values {
			out[i] = telemetry.Point{Time: start.Add(time.Duration(i) * time.Hour), Value: v}
		}
		return out
	}

	return telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		CapturedAt: now,
		StatusList: []telemetry.StatusRecord{
			{Key: telemetry.StatusGame, Value: "Connected", Level: "ok"},
			{Key: telemetry.StatusShip, Value: "Type-9 Heavy"},
			{Key: telemetry.StatusLocation, Value: "Shinrarta Dezhra"},
			{Key: telemetry.StatusActivity, Value: "Trading"},
			{Key: telemetry.StatusSession, Value: "2h 14m"},
			{Key: telemetry.StatusDatabase, Value: "Ready", Level: "ok"},
			{Key: telemetry.StatusModels, Value: "3 of 4", Level: "warn"},
			{Key: telemetry.StatusSync, Value: "Synced 5m ago", Level: "ok"},
			{Key: "commander_name", Value: "Jameson"},
			{Key: "fuel", Value: "32 / 32 t"},
			{Key: "jump_range", Value: "18.4 ly"},
		},
		MetricMap: map[string][]telemetry.Metric{
			"analysis": {
				{Key: "total_wealth", Value: "4.2B CR", Subtitle: "+12% this month"},
				{Key: "play_time", Value: "1,204 h"},
				{Key: "systems_visited", Value: "8,311"},
				{Key: "trade_rank", Value: "Tycoon", Subtitle: "64% to Elite"},
			},
			"mining": {
				{Key: "total_mined", Value: "12,480 t"},
				{Key: "mining_profit", Value: "1.1B CR"},
				{Key: "best_mineral", Value: "Void Opal"},
			},
			"hauling": {
				{Key: "trade_profit", Value: "2.3B CR"},
				{Key: "best_trade", Value: "Gold", Subtitle: "+9,800 CR/t"},
			},
		},
		ForecastList: []telemetry.Forecast{
			{Key: "elite_trade", Label: "Elite in trade", Value: "in 41 days", Low: band(33), High: band(52), Confidence: 0.8},
			{Key: "mining_yield", Label: "Painite per hour", Value: "210 t", Low: band(180), High: band(240), Confidence: 0.65},
		},
		EventList: []telemetry.Event{
			{Time: now.Add(-20 * time.Minute), Kind: "FSDJump", Detail: "Shinrarta Dezhra"},
			{Time: now.Add(-12 * time.Minute), Kind: "Docked", Detail: "Jameson Memorial"},
			{Time: now.Add(-4 * time.Minute), Kind: "MarketSell", Detail: "720 t Gold"},
		},
		SeriesMap: map[string][]telemetry.Point{
			"session_credits": series(12, 18, 9, 24, 31, 27),
			"wealth":          series(3.6, 3.7, 3.9, 4.0, 4.2),
		},
	}
}

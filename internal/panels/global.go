package panels

import (
	"github.com/zjrosen/flightdeck/internal/panel"
	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

const feedLimit = 12

func newRealTime(opts Options) (panel.Panel, error) {
	return newPage("Real-Time", false, opts,
		statusRow(
			statusSpec{telemetry.StatusGame, "GAME STATUS"},
			statusSpec{telemetry.StatusShip, "CURRENT SHIP"},
			statusSpec{telemetry.StatusLocation, "LOCATION"},
			statusSpec{telemetry.StatusActivity, "ACTIVITY"},
			statusSpec{telemetry.StatusSession, "SESSION TIME"},
		),
		eventFeed("Live Event Feed", feedLimit),
		placeholder("Fuel Level", "Main and reservoir tank levels from the **Status** file."),
		placeholder("Cargo Hold", "Current cargo manifest and free capacity."),
		chart("Session Performance", "session_credits", "Credits earned per hour this session."),
		placeholder("Current System Map", "Bodies, stations and signals in the current system."),
	), nil
}

func newAnalysis(opts Options) (panel.Panel, error) {
	return newPage("Analysis", false, opts,
		cards("analysis",
			cardSpec{"total_wealth", "TOTAL WEALTH", styles.TokenAccentGreen},
			cardSpec{"play_time", "PLAY TIME", styles.TokenAccentCyan},
			cardSpec{"systems_visited", "SYSTEMS VISITED", styles.TokenAccentOrange},
			cardSpec{"trade_rank", "TRADE RANK", styles.TokenAccentPurple},
		),
		chart("Wealth Progression", "wealth", "Net worth over time across all activities."),
		placeholder("Activity Breakdown", "Share of play time spent *mining*, *trading*, *combat* and *exploration*."),
		placeholder("Rank Progression", "Pilots Federation rank progress per discipline."),
		placeholder("Engineer Progress", "Unlocked engineers and outstanding blueprint requirements."),
	), nil
}

func newPrediction(opts Options) (panel.Panel, error) {
	return newPage("Prediction", false, opts,
		banner("AI PREDICTION ENGINE", "Trade, mining and wealth models trained on your journal history.",
			statusSpec{telemetry.StatusModels, "Models"}),
		forecasts("Elite Trade Prediction", "Projected date of reaching Elite in trade.", "elite_trade"),
		forecasts("Mining Yield Forecast", "Expected tonnage per hour at known hotspots.", "mining_yield"),
		placeholder("Optimal Play Times", "Hours of the week with the best historic credit rate."),
		placeholder("Material Needs", "Materials still required for pinned engineering blueprints."),
		chart("30-Day Wealth Forecast", "wealth_forecast", "Projected net worth for the next thirty days."),
	), nil
}

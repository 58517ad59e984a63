package panels

import (
	"github.com/zjrosen/flightdeck/internal/panel"
	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

func newMining(opts Options) (panel.Panel, error) {
	tabs, err := tabShell(string(KeyMining), opts,
		tab{subKey(KeyMining, "realtime"), "Real-Time", []block{
			placeholder("Live Prospector Results", "Material percentages from the last prospector limpets."),
			placeholder("Asteroid Scanner", "Core and motherlode detections in the current ring."),
			placeholder("Refinery Status", "Refinery bins and tonnage collected this session."),
		}},
		tab{subKey(KeyMining, "analysis"), "Analysis", []block{
			chart("Mineral Distribution", "mining_minerals", "Tonnage mined per mineral."),
			placeholder("Hotspot Performance", "Yield per hour by hotspot and ring type."),
		}},
		tab{subKey(KeyMining, "prediction"), "Prediction", []block{
			forecasts("Yield Prediction", "Expected yield for the next session.", "mining_yield"),
			placeholder("Market Timing", "Best stations and times to sell mined cargo."),
		}},
	)
	if err != nil {
		return nil, err
	}
	return newActivity(opts, tabs,
		cards("mining",
			cardSpec{"total_mined", "TOTAL MINED", styles.TokenAccentGold},
			cardSpec{"mining_profit", "MINING PROFIT", styles.TokenAccentGreen},
			cardSpec{"best_mineral", "BEST MINERAL", styles.TokenAccentSilver},
			cardSpec{"efficiency", "EFFICIENCY", styles.TokenAccentCyan},
		),
	), nil
}

func newHauling(opts Options) (panel.Panel, error) {
	tabs, err := tabShell(string(KeyHauling), opts,
		tab{subKey(KeyHauling, "realtime"), "Real-Time", []block{
			placeholder("Current Cargo", "Commodities aboard with purchase price."),
			placeholder("Market Prices", "Buy and sell prices at the docked station."),
			placeholder("Trade Route", "Active route legs and expected profit."),
		}},
		tab{subKey(KeyHauling, "analysis"), "Analysis", []block{
			chart("Profit History", "trade_profit", "Trade profit per session."),
			placeholder("Top Commodities", "Most profitable commodities traded."),
		}},
		tab{subKey(KeyHauling, "prediction"), "Prediction", []block{
			placeholder("Route Optimizer", "Suggested loops from recent market data."),
			forecasts("Market Forecast", "Expected price movement for tracked commodities.", "market_forecast"),
		}},
		tab{subKey(KeyHauling, "carrier"), "Fleet Carrier", []block{
			placeholder("Carrier Overview", "Carrier location, balance and upkeep."),
			placeholder("Import/Export", "Buy and sell orders on the carrier market."),
			placeholder("Tritium Tracker", "Tritium in depot and jumps remaining."),
		}},
	)
	if err != nil {
		return nil, err
	}
	return newActivity(opts, tabs,
		cards("hauling",
			cardSpec{"trade_profit", "TRADE PROFIT", styles.TokenAccentGreen},
			cardSpec{"commodities", "COMMODITIES", styles.TokenAccentCyan},
			cardSpec{"markets", "MARKETS", styles.TokenAccentOrange},
			cardSpec{"best_trade", "BEST TRADE", styles.TokenAccentGold},
		),
	), nil
}

func newCombat(opts Options) (panel.Panel, error) {
	tabs, err := tabShell(string(KeyCombat), opts,
		tab{subKey(KeyCombat, "pve"), "PVE", []block{
			placeholder("Bounty Hunting Stats", "Bounties by faction and ship type."),
			placeholder("Combat Zones", "Conflict zone results and payouts."),
		}},
		tab{subKey(KeyCombat, "pvp"), "PVP", []block{
			placeholder("PVP Record", "Kills, deaths and interdictions against commanders."),
			placeholder("Powerplay Combat", "Merits earned from powerplay combat."),
		}},
		tab{subKey(KeyCombat, "thargoids"), "Thargoids", []block{
			placeholder("Thargoid Encounters", "Interceptor and scout kills by variant."),
			placeholder("AX Loadout", "Anti-xeno weapons and modules fitted."),
			placeholder("Threat Map", "Systems under Thargoid control nearby."),
		}},
		tab{subKey(KeyCombat, "analysis"), "Analysis", []block{
			chart("Combat Efficiency", "bounty_rate", "Bounty credits per hour."),
			forecasts("Threat Prediction", "Likelihood of hostile encounters on planned routes.", "threat"),
		}},
	)
	if err != nil {
		return nil, err
	}
	return newActivity(opts, tabs,
		cards("combat",
			cardSpec{"bounty_profit", "BOUNTY PROFIT", styles.TokenAccentRed},
			cardSpec{"bounties_claimed", "BOUNTIES CLAIMED", styles.TokenAccentOrange},
			cardSpec{"combat_rank", "COMBAT RANK", styles.TokenAccentCyan},
			cardSpec{"thargoid_encounters", "THARGOID ENCOUNTERS", styles.TokenAccentGreen},
		),
	), nil
}

func newColonization(opts Options) (panel.Panel, error) {
	tabs, err := tabShell(string(KeyColonization), opts,
		tab{subKey(KeyColonization, "projects"), "Projects", []block{
			placeholder("Active Colonization Projects", "Construction sites and their completion."),
			placeholder("Resource Requirements", "Commodities still required per site."),
		}},
		tab{subKey(KeyColonization, "leaderboard"), "Leaderboard", []block{
			placeholder("Squadron Leaderboard", "Contributions ranked across the squadron."),
			placeholder("Your Rankings", "Your position per contribution category."),
		}},
		tab{subKey(KeyColonization, "analysis"), "Analysis", []block{
			chart("Contribution History", "contributions", "Tonnage delivered over time."),
			forecasts("Project Completion Prediction", "Estimated completion dates per site.", "project_completion"),
		}},
	)
	if err != nil {
		return nil, err
	}
	return newActivity(opts, tabs,
		banner("SYSTEM COLONIZATION", "Squadron colonization effort", statusSpec{"squadron_role", "Squadron role"}),
		cards("colonization",
			cardSpec{"exploration", "EXPLORATION", styles.TokenAccentCyan},
			cardSpec{"mining", "MINING", styles.TokenAccentGold},
			cardSpec{"bounty", "BOUNTY", styles.TokenAccentRed},
			cardSpec{"combat", "COMBAT", styles.TokenAccentOrange},
		),
	), nil
}

func newCommander(opts Options) (panel.Panel, error) {
	tabs, err := tabShell(string(KeyCommander), opts,
		tab{subKey(KeyCommander, "commander"), "Commander", []block{
			details("Commander",
				statusSpec{"commander_name", "Name"},
				statusSpec{"commander_fid", "FID"},
				statusSpec{"commander_squadron", "Squadron"},
			),
			placeholder("Faction Reputation", "Standing with the major and minor factions."),
			placeholder("Rank Progression", "Progress toward the next rank per discipline."),
			placeholder("Materials Inventory", "Raw, manufactured and encoded materials."),
		}},
		tab{subKey(KeyCommander, "ship"), "Ship", []block{
			details("Ship",
				statusSpec{telemetry.StatusShip, "Ship"},
				statusSpec{"fuel", "Fuel"},
				statusSpec{"jump_range", "Jump Range"},
				statusSpec{"power", "Power"},
			),
			placeholder("Module Loadout", "Fitted modules and engineering."),
			placeholder("Owned Ships", "Stored ships and their locations."),
		}},
		tab{subKey(KeyCommander, "system"), "System", []block{
			details("Current System",
				statusSpec{telemetry.StatusLocation, "System"},
				statusSpec{"allegiance", "Allegiance"},
				statusSpec{"security", "Security"},
			),
			placeholder("Galaxy Position", "Distance from Sol and the nearest hub."),
			placeholder("Visited Systems", "Systems visited and first discoveries."),
		}},
		tab{subKey(KeyCommander, "inara"), "INARA", []block{
			banner("INARA", "", statusSpec{telemetry.StatusSync, "Sync"}),
			placeholder("INARA Profile", "Public commander profile summary."),
			placeholder("Community Data", "Community goals and squadron news."),
		}},
	)
	if err != nil {
		return nil, err
	}
	return newActivity(opts, tabs), nil
}

package model

// Report is the statistics summary computed from a finished contribution map
type Report struct {
	Games           []string `json:"games"`            // Games evaluated, oldest first
	TotalDevelopers int      `json:"total_developers"` // Unique canonical developers

	RecentFrom         string   `json:"recent_from,omitempty"`
	RecentContributors int      `json:"recent_contributors"`
	VeteranUntil       string   `json:"veteran_until,omitempty"`
	OldTimers          int      `json:"old_timers"`                // Early and recent contributors
	OldTimerShare      *float64 `json:"old_timer_share,omitempty"` // Percent of recent contributors; absent when none

	Attrition          []AttritionEntry    `json:"attrition"`
	Transitions        []Transition        `json:"transitions"`
	ContributionCounts []ContributionCount `json:"contribution_counts"`
	Overlap            *Overlap            `json:"overlap,omitempty"`
	RoleCounts         []RoleCount         `json:"role_counts"`

	Signals []Signal `json:"signals"` // Human-readable findings with their inputs
}

// AttritionEntry is the share of a game's contributors for whom it was their last game
type AttritionEntry struct {
	Game     string  `json:"game"`
	Total    int     `json:"total"`    // Contributors to the game
	Final    int     `json:"final"`    // Contributors whose last game it is
	Percent  float64 `json:"percent"`  // final / total * 100
	Excluded bool    `json:"excluded"` // Too recent to read as attrition
}

// Transition counts developers moving from one game to their next (or to NoneGame)
type Transition struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// ContributionCount buckets developers by number of games contributed to
type ContributionCount struct {
	Games      int      `json:"games"`
	Count      int      `json:"count"`
	Developers []string `json:"developers"`
}

// Overlap counts developers by exact membership across a small set of games
type Overlap struct {
	Games   []string        `json:"games"`
	Regions []OverlapRegion `json:"regions"`
}

// OverlapRegion is one Venn region: contributed to exactly Members among the overlap games
type OverlapRegion struct {
	Members []string `json:"members"`
	Count   int      `json:"count"`
}

// RoleCount tallies contributions per role category
type RoleCount struct {
	Role          RoleCategory `json:"role"`
	Contributions int          `json:"contributions"`
	Developers    int          `json:"developers"` // Developers with at least one contribution in the role
}

// Signal is a transparent finding with the data it was computed from
type Signal struct {
	Type        SignalType             `json:"type"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies a finding
type SignalType string

const (
	SignalRetention     SignalType = "retention"      // Old timers among recent contributors
	SignalAttritionPeak SignalType = "attrition_peak" // Game with the highest attrition
	SignalOneShot       SignalType = "one_shot"       // Developers credited on a single game
	SignalTopFlow       SignalType = "top_flow"       // Largest game-to-game transition
)

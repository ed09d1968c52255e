package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ppiankov/creditlens/internal/model"
)

func testOrder(t *testing.T) *model.GameOrder {
	t.Helper()
	order, err := model.NewGameOrder([]model.Game{
		{Slug: "g1", Year: 2000},
		{Slug: "g2", Year: 2002},
		{Slug: "g3", Year: 2004},
		{Slug: "g4", Year: 2006},
		{Slug: "g5", Year: 2008},
	})
	if err != nil {
		t.Fatalf("NewGameOrder: %v", err)
	}
	return order
}

func dev(key string, games ...string) *model.Developer {
	d := &model.Developer{Key: key, Name: key}
	for _, g := range games {
		d.Contributions = append(d.Contributions, model.Contribution{Game: g, Role: model.RoleProgramming, InScope: true})
	}
	return d
}

func fixture() model.ContributionMap {
	return model.ContributionMap{
		"ann": dev("ann", "g1", "g2", "g5"),
		"bob": dev("bob", "g1"),
		"cat": dev("cat", "g2", "g3"),
		"dan": dev("dan", "g4", "g5"),
		"eve": dev("eve", "g5"),
	}
}

func testConfig() model.StatsConfig {
	return model.StatsConfig{
		RecentFrom:       "g4",
		VeteranUntil:     "g2",
		OverlapGames:     []string{"g4", "g5"},
		AttritionExclude: []string{"g5"},
	}
}

func TestCalculator_Calculate_Totals(t *testing.T) {
	report, err := NewCalculator(testOrder(t), testConfig()).Calculate(fixture())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if report.TotalDevelopers != 5 {
		t.Errorf("Expected 5 developers, got %d", report.TotalDevelopers)
	}

	// ann, dan, eve touch g4 or later; only ann also touched g2 or earlier
	if report.RecentContributors != 3 {
		t.Errorf("Expected 3 recent contributors, got %d", report.RecentContributors)
	}
	if report.OldTimers != 1 {
		t.Errorf("Expected 1 old timer, got %d", report.OldTimers)
	}
	if report.OldTimerShare == nil {
		t.Fatal("Expected old timer share")
	}
	if got := *report.OldTimerShare; got < 33.33 || got > 33.34 {
		t.Errorf("Expected share ~33.33, got %f", got)
	}
}

func TestCalculator_Calculate_Attrition(t *testing.T) {
	report, err := NewCalculator(testOrder(t), testConfig()).Calculate(fixture())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	want := []model.AttritionEntry{
		{Game: "g1", Total: 2, Final: 1, Percent: 50},
		{Game: "g2", Total: 2, Final: 0, Percent: 0},
		{Game: "g3", Total: 1, Final: 1, Percent: 100},
		{Game: "g4", Total: 1, Final: 0, Percent: 0},
		{Game: "g5", Total: 3, Final: 3, Percent: 100, Excluded: true},
	}
	if diff := cmp.Diff(want, report.Attrition); diff != "" {
		t.Errorf("attrition mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculator_Calculate_AttritionBoundsAndEmptyGame(t *testing.T) {
	devs := model.ContributionMap{
		"ann": dev("ann", "g1", "g3"),
		"bob": dev("bob", "g3"),
	}

	report, err := NewCalculator(testOrder(t), model.StatsConfig{}).Calculate(devs)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	for _, e := range report.Attrition {
		if e.Total == 0 {
			t.Errorf("Game %s with zero contributors must be absent", e.Game)
		}
		if e.Percent < 0 || e.Percent > 100 {
			t.Errorf("Attrition for %s out of range: %f", e.Game, e.Percent)
		}
		if math.IsNaN(e.Percent) {
			t.Errorf("Attrition for %s is NaN", e.Game)
		}
	}

	for _, absent := range []string{"g2", "g4", "g5"} {
		for _, e := range report.Attrition {
			if e.Game == absent {
				t.Errorf("Expected %s to be absent from attrition", absent)
			}
		}
	}
}

func TestCalculator_Calculate_Transitions(t *testing.T) {
	report, err := NewCalculator(testOrder(t), testConfig()).Calculate(fixture())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	want := []model.Transition{
		{From: "g1", To: "g2", Count: 1},
		{From: "g1", To: model.NoneGame, Count: 1},
		{From: "g2", To: "g3", Count: 1},
		{From: "g2", To: "g5", Count: 1},
		{From: "g3", To: model.NoneGame, Count: 1},
		{From: "g4", To: "g5", Count: 1},
		{From: "g5", To: model.NoneGame, Count: 3},
	}
	if diff := cmp.Diff(want, report.Transitions); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}

	// Every developer ends in exactly one terminal edge
	terminal := 0
	for _, tr := range report.Transitions {
		if tr.To == model.NoneGame {
			terminal += tr.Count
		}
	}
	if terminal != report.TotalDevelopers {
		t.Errorf("Expected %d terminal edges, got %d", report.TotalDevelopers, terminal)
	}
}

func TestCalculator_Calculate_ContributionCounts(t *testing.T) {
	report, err := NewCalculator(testOrder(t), testConfig()).Calculate(fixture())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	want := []model.ContributionCount{
		{Games: 1, Count: 2, Developers: []string{"bob", "eve"}},
		{Games: 2, Count: 2, Developers: []string{"cat", "dan"}},
		{Games: 3, Count: 1, Developers: []string{"ann"}},
		{Games: 4, Count: 0, Developers: []string{}},
		{Games: 5, Count: 0, Developers: []string{}},
	}
	if diff := cmp.Diff(want, report.ContributionCounts); diff != "" {
		t.Errorf("contribution counts mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculator_Calculate_Overlap(t *testing.T) {
	report, err := NewCalculator(testOrder(t), testConfig()).Calculate(fixture())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	want := &model.Overlap{
		Games: []string{"g4", "g5"},
		Regions: []model.OverlapRegion{
			{Members: []string{"g4"}, Count: 0},
			{Members: []string{"g5"}, Count: 2},
			{Members: []string{"g4", "g5"}, Count: 1},
		},
	}
	if diff := cmp.Diff(want, report.Overlap); diff != "" {
		t.Errorf("overlap mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculator_Calculate_NoRecentContributors(t *testing.T) {
	devs := model.ContributionMap{"bob": dev("bob", "g1")}

	report, err := NewCalculator(testOrder(t), testConfig()).Calculate(devs)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if report.OldTimerShare != nil {
		t.Errorf("Expected no share without recent contributors, got %f", *report.OldTimerShare)
	}
}

func TestCalculator_Calculate_RoleCounts(t *testing.T) {
	devs := model.ContributionMap{
		"ann": {Key: "ann", Contributions: []model.Contribution{
			{Game: "g1", Role: model.RoleArt},
			{Game: "g2", Role: model.RoleArt},
			{Game: "g3", Role: model.RoleDesign},
		}},
		"bob": {Key: "bob", Contributions: []model.Contribution{
			{Game: "g1", Role: model.RoleDesign},
		}},
	}

	report, err := NewCalculator(testOrder(t), model.StatsConfig{}).Calculate(devs)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	want := []model.RoleCount{
		{Role: model.RoleArt, Contributions: 2, Developers: 1},
		{Role: model.RoleDesign, Contributions: 2, Developers: 2},
	}
	if diff := cmp.Diff(want, report.RoleCounts); diff != "" {
		t.Errorf("role counts mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculator_Calculate_Signals(t *testing.T) {
	report, err := NewCalculator(testOrder(t), testConfig()).Calculate(fixture())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	found := make(map[model.SignalType]model.Signal)
	for _, s := range report.Signals {
		found[s.Type] = s
	}

	for _, typ := range []model.SignalType{model.SignalRetention, model.SignalAttritionPeak, model.SignalTopFlow, model.SignalOneShot} {
		if _, ok := found[typ]; !ok {
			t.Errorf("Expected %s signal", typ)
		}
	}

	// g5 is excluded, so the peak is the earliest 100% game
	if got := found[model.SignalAttritionPeak].Data["game"]; got != "g3" {
		t.Errorf("Expected attrition peak g3, got %v", got)
	}
	if _, ok := found[model.SignalRetention].Data["formula"]; !ok {
		t.Error("Expected retention signal to carry its formula")
	}
}

func TestCalculator_Calculate_UnknownGame(t *testing.T) {
	devs := model.ContributionMap{"ann": dev("ann", "g1", "g9")}

	_, err := NewCalculator(testOrder(t), model.StatsConfig{}).Calculate(devs)
	if !errors.Is(err, model.ErrUnknownGameReference) {
		t.Errorf("Expected unknown game error, got %v", err)
	}

	_, err = NewCalculator(testOrder(t), model.StatsConfig{RecentFrom: "g9"}).Calculate(fixture())
	if !errors.Is(err, model.ErrUnknownGameReference) {
		t.Errorf("Expected unknown game error for config reference, got %v", err)
	}
}

func TestCalculator_Calculate_Deterministic(t *testing.T) {
	calc := NewCalculator(testOrder(t), testConfig())

	first, err := calc.Calculate(fixture())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := calc.Calculate(fixture())
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs:\n%s", i, diff)
		}
	}
}

func TestCalculator_Calculate_Empty(t *testing.T) {
	report, err := NewCalculator(testOrder(t), testConfig()).Calculate(model.ContributionMap{})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if report.TotalDevelopers != 0 || len(report.Attrition) != 0 || len(report.Transitions) != 0 {
		t.Errorf("Expected empty report, got %+v", report)
	}
}

package export

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/creditlens/internal/model"
	"github.com/ppiankov/creditlens/internal/stats"
)

func fixtureOrder(t *testing.T) *model.GameOrder {
	t.Helper()
	order, err := model.NewGameOrder([]model.Game{
		{Slug: "2004_rome", Year: 2004, Label: "Rome", Color: "#aa0000", X: 0.1, Y: 0.2},
		{Slug: "2006_medieval_2", Year: 2006, Label: "Medieval II", Color: "#00aa00", X: 0.2, Y: 0.3},
		{Slug: "2012_fall_of_the_samurai", Year: 2012, Label: "Fall of the Samurai", Saga: true, X: 0.5, Y: 0.6},
	})
	require.NoError(t, err)
	return order
}

func fixtureMap() model.ContributionMap {
	return model.ContributionMap{
		"chris gambold": {Key: "chris gambold", Name: "Chris Gambold", Contributions: []model.Contribution{
			{Game: "2004_rome", Role: model.RoleDesign, InScope: true},
			{Game: "2006_medieval_2", Role: model.RoleDesign, InScope: true},
		}},
		"chloe bonnet": {Key: "chloe bonnet", Name: "Chloé Bonnet", Contributions: []model.Contribution{
			{Game: "2012_fall_of_the_samurai", Role: model.RoleArt, InScope: true},
		}},
		"mike simpson": {Key: "mike simpson", Name: "Mike Simpson", Contributions: []model.Contribution{
			{Game: "2004_rome", Role: model.RoleLeadership, InScope: true},
			{Game: "2012_fall_of_the_samurai", Role: model.RoleLeadership, InScope: true},
		}},
	}
}

func statsConfig() model.StatsConfig {
	return model.StatsConfig{
		RecentFrom:       "2012_fall_of_the_samurai",
		VeteranUntil:     "2004_rome",
		OverlapGames:     []string{"2006_medieval_2", "2012_fall_of_the_samurai"},
		AttritionExclude: []string{"2012_fall_of_the_samurai"},
	}
}

func TestSnapshotRoundTripReproducesStats(t *testing.T) {
	order := fixtureOrder(t)
	devs := fixtureMap()

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, order, devs))

	reloadedOrder, reloaded, err := ReadSnapshot(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	if diff := cmp.Diff(devs, reloaded); diff != "" {
		t.Errorf("map mismatch after reload (-want +got):\n%s", diff)
	}
	assert.Equal(t, order.Games(), reloadedOrder.Games())

	direct, err := stats.NewCalculator(order, statsConfig()).Calculate(devs)
	require.NoError(t, err)
	fromArtifact, err := stats.NewCalculator(reloadedOrder, statsConfig()).Calculate(reloaded)
	require.NoError(t, err)

	if diff := cmp.Diff(direct, fromArtifact); diff != "" {
		t.Errorf("stats differ after reload (-direct +artifact):\n%s", diff)
	}
}

func TestWriteSnapshotDeterministic(t *testing.T) {
	order := fixtureOrder(t)

	var first, second bytes.Buffer
	require.NoError(t, WriteSnapshot(&first, order, fixtureMap()))
	require.NoError(t, WriteSnapshot(&second, order, fixtureMap()))

	assert.Equal(t, first.String(), second.String())
	// Developers are written in key order
	assert.Less(t, strings.Index(first.String(), "chloe bonnet"), strings.Index(first.String(), "mike simpson"))
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed", "developer_contributions.json")

	require.NoError(t, SaveSnapshotFile(path, fixtureOrder(t), fixtureMap()))
	_, reloaded, err := LoadSnapshotFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Len())
}

func TestReadSnapshotRejectsInvalid(t *testing.T) {
	games := `[{"slug":"a","year":2000},{"slug":"b","year":2001}]`

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"version", `{"version":9,"games":` + games + `,"developers":[]}`, nil},
		{"unknown game", `{"version":1,"games":` + games + `,"developers":[{"key":"x","name":"X","contributions":[{"game":"z","role":"art"}]}]}`, model.ErrUnknownGameReference},
		{"out of order", `{"version":1,"games":` + games + `,"developers":[{"key":"x","name":"X","contributions":[{"game":"b","role":"art"},{"game":"a","role":"art"}]}]}`, nil},
		{"repeated game", `{"version":1,"games":` + games + `,"developers":[{"key":"x","name":"X","contributions":[{"game":"a","role":"art"},{"game":"a","role":"qa"}]}]}`, nil},
		{"bad role", `{"version":1,"games":` + games + `,"developers":[{"key":"x","name":"X","contributions":[{"game":"a","role":"juggling"}]}]}`, nil},
		{"duplicate key", `{"version":1,"games":` + games + `,"developers":[{"key":"x","name":"X","contributions":[]},{"key":"x","name":"X","contributions":[]}]}`, nil},
		{"empty key", `{"version":1,"games":` + games + `,"developers":[{"key":" ","name":"X","contributions":[]}]}`, nil},
		{"unknown field", `{"version":1,"games":` + games + `,"developers":[],"extra":true}`, nil},
		{"no games", `{"version":1,"games":[],"developers":[]}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadSnapshot(strings.NewReader(tt.body))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credits.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	order := fixtureOrder(t)
	devs := fixtureMap()
	require.NoError(t, store.SaveSnapshot(ctx, order, devs))

	// Saving twice replaces rather than appends
	require.NoError(t, store.SaveSnapshot(ctx, order, devs))

	reloadedOrder, reloaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(devs, reloaded); diff != "" {
		t.Errorf("map mismatch after sqlite reload (-want +got):\n%s", diff)
	}
	assert.Equal(t, order.Games(), reloadedOrder.Games())
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credits.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveSnapshot(ctx, fixtureOrder(t), fixtureMap()))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	_, reloaded, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Len())
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestUpSection(t *testing.T) {
	got := upSection("-- +migrate Up\nCREATE TABLE a (x);\n-- +migrate Down\nDROP TABLE a;\n")
	assert.Equal(t, "\nCREATE TABLE a (x);\n", got)
	assert.Equal(t, "SELECT 1;", upSection("SELECT 1;"))
}

func TestBuildFlow(t *testing.T) {
	order := fixtureOrder(t)
	report, err := stats.NewCalculator(order, statsConfig()).Calculate(fixtureMap())
	require.NoError(t, err)

	flow, err := NewRenderer(order).BuildFlow(report)
	require.NoError(t, err)

	require.Len(t, flow.Nodes, 4)
	assert.Equal(t, model.NoneGame, flow.Nodes[3].Slug)

	total := 0
	for _, link := range flow.Links {
		if link.Target == 3 {
			total += link.Value
		}
		assert.Equal(t, flow.Nodes[link.Source].Color, link.Color)
	}
	assert.Equal(t, 3, total, "every developer flows to the terminal node once")
}

func TestBuildFlowUnknownGame(t *testing.T) {
	report := &model.Report{Transitions: []model.Transition{{From: "nope", To: model.NoneGame, Count: 1}}}
	_, err := NewRenderer(fixtureOrder(t)).BuildFlow(report)
	assert.True(t, errors.Is(err, model.ErrUnknownGameReference))
}

func TestMarkdown(t *testing.T) {
	order := fixtureOrder(t)
	report, err := stats.NewCalculator(order, statsConfig()).Calculate(fixtureMap())
	require.NoError(t, err)

	md := NewRenderer(order).Markdown(report)

	for _, want := range []string{
		"# Developer Contributions",
		"**Unique developers:** 3",
		"## Attrition",
		"| Medieval II | 1 | 1 | 100.00% |",
		"(too recent)",
		"| Medieval II + Fall of the Samurai |",
		"## Roles",
	} {
		assert.Contains(t, md, want)
	}
}

func TestRenderFiles(t *testing.T) {
	order := fixtureOrder(t)
	report, err := stats.NewCalculator(order, statsConfig()).Calculate(fixtureMap())
	require.NoError(t, err)

	dir := t.TempDir()
	r := NewRenderer(order)
	require.NoError(t, r.RenderJSON(report, filepath.Join(dir, "stats.json")))
	require.NoError(t, r.RenderFlowJSON(report, filepath.Join(dir, "flow.json")))
	require.NoError(t, r.RenderMarkdown(report, filepath.Join(dir, "report.md")))

	var out bytes.Buffer
	r.RenderSummary(&out, report)
	assert.Contains(t, out.String(), "Developers: 3 across 3 games")
}

package aggregate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ppiankov/creditlens/internal/classify"
	"github.com/ppiankov/creditlens/internal/identity"
	"github.com/ppiankov/creditlens/internal/model"
)

func testOrder(t *testing.T) *model.GameOrder {
	t.Helper()
	order, err := model.NewGameOrder([]model.Game{
		{Slug: "2000_shogun", Year: 2000},
		{Slug: "2004_rome", Year: 2004},
		{Slug: "2006_medieval_2", Year: 2006},
		{Slug: "2011_shogun_2", Year: 2011},
		{Slug: "2012_fall_of_the_samurai", Year: 2012, Saga: true},
	})
	require.NoError(t, err)
	return order
}

func newAggregator(t *testing.T, aliases map[string]string) *Aggregator {
	t.Helper()
	n, err := identity.NewNormalizer(aliases)
	require.NoError(t, err)
	return NewAggregator(testOrder(t), classify.NewClassifier(nil, nil), n, zaptest.NewLogger(t))
}

func entry(game, name, role string) model.RawCreditEntry {
	return model.RawCreditEntry{Game: game, Name: name, Role: role}
}

func TestAggregateAliasExample(t *testing.T) {
	agg := newAggregator(t, map[string]string{"c. gambold": "chris gambold"})

	result, err := agg.Aggregate(GroupByGame([]model.RawCreditEntry{
		entry("2004_rome", "Chris Gambold", "Lead Designer"),
		entry("2006_medieval_2", "C. Gambold", "Designer"),
	}))
	require.NoError(t, err)

	require.Equal(t, 1, result.Developers.Len())
	dev, ok := result.Developers["chris gambold"]
	require.True(t, ok, "expected developer keyed by alias target")

	want := []model.Contribution{
		{Game: "2004_rome", Role: model.RoleDesign, InScope: true},
		{Game: "2006_medieval_2", Role: model.RoleDesign, InScope: true},
	}
	if diff := cmp.Diff(want, dev.Contributions); diff != "" {
		t.Errorf("contributions mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateOutOfScopeOnlyEntryAbsent(t *testing.T) {
	agg := newAggregator(t, nil)

	result, err := agg.Aggregate(map[string][]model.RawCreditEntry{
		"2004_rome": {
			entry("2004_rome", "Lucia Loc", "Localization Coordinator"),
			entry("2004_rome", "Pat Prog", "Programmer"),
		},
	})
	require.NoError(t, err)

	_, present := result.Developers["lucia loc"]
	assert.False(t, present, "out-of-scope developer must not appear")
	assert.Equal(t, 1, result.Developers.Len())
	assert.Equal(t, 1, result.Summary.OutOfScope)
	assert.Equal(t, 1, result.Summary.Categories[model.RoleLocalization])
}

func TestAggregateDedupWithinGame(t *testing.T) {
	agg := newAggregator(t, map[string]string{"Chris Gray": "Christopher Gray"})

	result, err := agg.Aggregate(map[string][]model.RawCreditEntry{
		"2011_shogun_2": {
			entry("2011_shogun_2", "Chris Gray", "Senior Artist"),
			entry("2011_shogun_2", "Christopher Gray", "Programmer"),
			entry("2011_shogun_2", "christopher  gray", "Designer"),
		},
	})
	require.NoError(t, err)

	dev := result.Developers["christopher gray"]
	require.NotNil(t, dev)
	require.Len(t, dev.Contributions, 1)
	assert.Equal(t, model.RoleArt, dev.Contributions[0].Role, "first-seen role is kept")
	assert.Equal(t, "Christopher Gray", dev.Name)
	assert.Equal(t, 2, result.Summary.Duplicates)
	assert.Equal(t, 1, result.Summary.Games["2011_shogun_2"].Developers)
}

func TestAggregateChronologyIndependentOfInputOrder(t *testing.T) {
	agg := newAggregator(t, nil)

	input := map[string][]model.RawCreditEntry{
		"2012_fall_of_the_samurai": {entry("2012_fall_of_the_samurai", "Ann Artist", "Artist")},
		"2000_shogun":              {entry("2000_shogun", "Ann Artist", "Artist")},
		"2011_shogun_2":            {entry("2011_shogun_2", "Ann Artist", "Lead Artist")},
		"2004_rome":                {entry("2004_rome", "Ann Artist", "Producer")},
	}

	for i := 0; i < 20; i++ {
		result, err := agg.Aggregate(input)
		require.NoError(t, err)

		got := result.Developers["ann artist"].Games()
		want := []string{"2000_shogun", "2004_rome", "2011_shogun_2", "2012_fall_of_the_samurai"}
		require.Equal(t, want, got)
	}
}

func TestAggregateScopeClosureAndMonotonic(t *testing.T) {
	order := testOrder(t)
	agg := newAggregator(t, identity.DefaultAliases())
	policy := classify.DefaultScopePolicy()

	roles := []string{
		"Programmer", "Voice Actor", "Lead Designer", "Marketing Manager", "Special Thanks",
		"QA Tester", "Sound Designer", "Duduk", "Producer", "Community Manager",
	}
	names := []string{"Ann", "Bob", "Chris Gray", "Christopher Gray", "Dee"}

	input := make(map[string][]model.RawCreditEntry)
	for gi, g := range order.Games() {
		for ni, name := range names {
			role := roles[(gi+ni)%len(roles)]
			input[g.Slug] = append(input[g.Slug], entry(g.Slug, name, role))
		}
	}

	result, err := agg.Aggregate(input)
	require.NoError(t, err)

	for key, dev := range result.Developers {
		last := -1
		for _, c := range dev.Contributions {
			assert.True(t, policy.InScope(c.Role), "%s has out-of-scope %s", key, c.Role)
			assert.True(t, c.InScope)
			idx, ok := order.Index(c.Game)
			require.True(t, ok)
			assert.Greater(t, idx, last, "%s contributions out of order", key)
			last = idx
		}
	}
}

func TestAggregateDeterministic(t *testing.T) {
	input := map[string][]model.RawCreditEntry{
		"2004_rome": {
			entry("2004_rome", "Zed", "Programmer"),
			entry("2004_rome", "Amy", "Artist"),
			entry("2004_rome", "Mid", "Who knows"),
		},
		"2006_medieval_2": {
			entry("2006_medieval_2", "Amy", "Art Director"),
			entry("2006_medieval_2", "Kim", "Tester"),
		},
	}

	first, err := newAggregator(t, nil).Aggregate(input)
	require.NoError(t, err)
	second, err := newAggregator(t, nil).Aggregate(input)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, []string{"Who knows"}, first.Summary.Unclassified)
}

func TestAggregateUnknownGameBucket(t *testing.T) {
	agg := newAggregator(t, nil)

	result, err := agg.Aggregate(map[string][]model.RawCreditEntry{
		"2004_rome":    {entry("2004_rome", "Ann", "Programmer")},
		"2099_mystery": {entry("2099_mystery", "Ann", "Programmer")},
	})
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnknownGameReference))

	var unknown *model.UnknownGameReferenceError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "2099_mystery", unknown.Game)
}

func TestAggregateUnknownGameInEntry(t *testing.T) {
	agg := newAggregator(t, nil)

	_, err := agg.Aggregate(map[string][]model.RawCreditEntry{
		"2004_rome": {entry("2099_mystery", "Ann", "Programmer")},
	})
	assert.True(t, errors.Is(err, model.ErrUnknownGameReference), "got %v", err)
}

func TestAggregateMalformed(t *testing.T) {
	tests := []struct {
		name  string
		entry model.RawCreditEntry
		field string
	}{
		{"missing name", entry("2004_rome", "  ", "Programmer"), "name"},
		{"missing role", entry("2004_rome", "Ann", ""), "role"},
		{"missing game", entry("", "Ann", "Programmer"), "game"},
		{"game mismatch", entry("2006_medieval_2", "Ann", "Programmer"), "game"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := newAggregator(t, nil)
			result, err := agg.Aggregate(map[string][]model.RawCreditEntry{
				"2004_rome": {entry("2004_rome", "Bob", "Artist"), tt.entry},
			})
			assert.Nil(t, result, "no partial map on failure")

			var malformed *model.MalformedSourceRecordError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, tt.field, malformed.Field)
			assert.Equal(t, "2004_rome", malformed.Game)
			assert.Equal(t, 1, malformed.Index)
			assert.True(t, errors.Is(err, model.ErrMalformedSourceRecord))
		})
	}
}

func TestAggregateNameOnlyNoteIsSkipped(t *testing.T) {
	agg := newAggregator(t, nil)

	result, err := agg.Aggregate(map[string][]model.RawCreditEntry{
		"2004_rome": {
			entry("2004_rome", "Bob", "Artist"),
			entry("2004_rome", "(cont.)", "Programmer"),
			entry("2004_rome", "'Nick'", "Programmer"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"bob"}, result.Developers.Keys())
	assert.Equal(t, 2, result.Summary.Unnamed)
	assert.Equal(t, 1, result.Summary.Kept)
}

func TestAggregateReportsFirstUnknownGameBySlug(t *testing.T) {
	buckets := map[string][]model.RawCreditEntry{
		"2004_rome": {entry("2004_rome", "Ann", "Programmer")},
	}
	for _, slug := range []string{"2099_zeta", "2098_beta", "2097_alpha", "2096_omega"} {
		buckets[slug] = []model.RawCreditEntry{entry(slug, "Ann", "Programmer")}
	}

	for i := 0; i < 20; i++ {
		_, err := newAggregator(t, nil).Aggregate(buckets)

		var unknown *model.UnknownGameReferenceError
		require.True(t, errors.As(err, &unknown), "got %v", err)
		assert.Equal(t, "2096_omega", unknown.Game)
	}
}

func TestAggregateOutOfScopeMissingNameStillMalformed(t *testing.T) {
	agg := newAggregator(t, nil)
	_, err := agg.Aggregate(map[string][]model.RawCreditEntry{
		"2004_rome": {entry("2004_rome", "", "Voice Actor")},
	})
	assert.True(t, errors.Is(err, model.ErrMalformedSourceRecord))
}

func TestAggregateEmptyInput(t *testing.T) {
	result, err := newAggregator(t, nil).Aggregate(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Developers.Len())
	assert.Empty(t, result.Summary.Unclassified)
}

func TestGroupByGame(t *testing.T) {
	grouped := GroupByGame([]model.RawCreditEntry{
		entry("2004_rome", "A", "Programmer"),
		entry("2000_shogun", "B", "Artist"),
		entry("2004_rome", "C", "Designer"),
	})

	assert.Len(t, grouped, 2)
	assert.Equal(t, []string{"A", "C"}, []string{grouped["2004_rome"][0].Name, grouped["2004_rome"][1].Name})
}

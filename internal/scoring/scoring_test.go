package scoring

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/beer-mile/internal/model"
)

func beer(user string, pub int, beerType string, pints float64) model.BeerEvent {
	return model.BeerEvent{User: user, Pub: pub, BeerType: beerType, Pints: pints}
}

func TestScores_SingleHalfPint(t *testing.T) {
	users := map[string]string{"Alice": "Ferrari"}
	events := []model.Event{beer("Alice", 3, "IPA", 0.5)}

	s := Scores(users, events)["Alice"]

	assert.Equal(t, 10.0, s.ConsumptionPoints)
	assert.Equal(t, 5, s.BeerVarietyBonus)
	assert.Equal(t, 10, s.PubVisitBonus)
	assert.Equal(t, 25.0, s.Total)
}

func TestScores_Penalty(t *testing.T) {
	users := map[string]string{"Bob": "Ferrari"}
	events := []model.Event{model.NewPenalty("Bob", "Skipped Pub")}

	s := Scores(users, events)["Bob"]

	assert.Equal(t, -10.0, s.Total)
	assert.Equal(t, 1, s.Penalties)
	assert.Equal(t, 0, s.UniquePubs)
}

func TestScores_BonusesCountUniqueValuesOnce(t *testing.T) {
	users := map[string]string{"Alice": "Ferrari"}
	events := []model.Event{
		beer("Alice", 1, "IPA", 1),
		beer("Alice", 1, "IPA", 1),
		beer("Alice", 2, "IPA", 1),
		beer("Alice", 2, "Stout", 1),
	}

	s := Scores(users, events)["Alice"]

	assert.Equal(t, 2, s.UniqueBeerTypes)
	assert.Equal(t, 10, s.BeerVarietyBonus)
	assert.Equal(t, 2, s.UniquePubs)
	assert.Equal(t, 20, s.PubVisitBonus)
	assert.Equal(t, 80.0+10+20, s.Total)
}

func TestScores_OrderIndependent(t *testing.T) {
	users := map[string]string{"Alice": "Ferrari"}
	events := []model.Event{
		beer("Alice", 4, "Lager", 0.5),
		model.NewPenalty("Alice", "Skipped Pub"),
		beer("Alice", 9, "Porter", 1.25),
		beer("Alice", 4, "IPA", 0.75),
		model.NewPenalty("Alice", "Incorrect Info"),
	}
	want := Scores(users, events)["Alice"].Total

	reversed := slices.Clone(events)
	slices.Reverse(reversed)
	rotated := append(slices.Clone(events[2:]), events[:2]...)

	for _, perm := range [][]model.Event{reversed, rotated} {
		got := Scores(users, perm)["Alice"].Total
		assert.Equal(t, Round2(want), Round2(got))
	}
}

func TestScores_Monotonicity(t *testing.T) {
	users := map[string]string{"Alice": "Ferrari"}
	events := []model.Event{beer("Alice", 1, "IPA", 1)}
	base := Scores(users, events)["Alice"].Total

	withBeer := Scores(users, append(slices.Clone(events), beer("Alice", 1, "IPA", 0.1)))["Alice"].Total
	assert.Greater(t, withBeer, base)

	withPenalty := Scores(users, append(slices.Clone(events), model.NewPenalty("Alice", "Skipped Pub")))["Alice"].Total
	assert.Equal(t, base-10, withPenalty)
}

func TestScores_SkipsOrphanEvents(t *testing.T) {
	users := map[string]string{"Alice": "Ferrari"}
	events := []model.Event{
		beer("Ghost", 1, "IPA", 3),
		model.NewPenalty("Ghost", "Skipped Pub"),
	}

	scores := Scores(users, events)

	require.Len(t, scores, 1)
	assert.Equal(t, 0.0, scores["Alice"].Total)
}

func TestScores_RegisteredWithoutEvents(t *testing.T) {
	scores := Scores(map[string]string{"Alice": "Ferrari"}, nil)
	assert.Equal(t, 0.0, scores["Alice"].Total)
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(model.NewState(), DefaultTrackLength)
	assert.Empty(t, got.Drivers)
	assert.Empty(t, got.Teams)
	assert.NotNil(t, got.Drivers)
	assert.NotNil(t, got.Teams)

	got = Compute(nil, DefaultTrackLength)
	assert.Empty(t, got.Drivers)
	assert.Empty(t, got.Teams)
}

func TestCompute_AliceAndBob(t *testing.T) {
	st := model.NewState()
	st.Users["Alice"] = "Ferrari"
	st.Users["Bob"] = "Ferrari"
	st.Events = append(st.Events,
		beer("Alice", 3, "IPA", 0.5),
		model.NewPenalty("Bob", "Skipped Pub"),
	)

	got := Compute(st, DefaultTrackLength)

	require.Len(t, got.Drivers, 2)
	assert.Equal(t, "Alice", got.Drivers[0].Driver)
	assert.Equal(t, 25.0, got.Drivers[0].Points)
	assert.Equal(t, 1, got.Drivers[0].Position)
	assert.Equal(t, "Bob", got.Drivers[1].Driver)
	assert.Equal(t, -10.0, got.Drivers[1].Points)
	assert.Equal(t, 2, got.Drivers[1].Position)

	require.Len(t, got.Teams, 1)
	assert.Equal(t, "Ferrari", got.Teams[0].Team)
	assert.Equal(t, 7.5, got.Teams[0].AvgPoints)
	assert.Equal(t, 2, got.Teams[0].Drivers)
	assert.Equal(t, DefaultTrackLength-1, got.Teams[0].TrackPosition)
}

func TestCompute_DoesNotMutateState(t *testing.T) {
	st := model.NewState()
	st.Users["Alice"] = "Ferrari"
	st.Events = append(st.Events, beer("Alice", 3, "IPA", 0.5))
	before := st.Clone()

	_ = Compute(st, DefaultTrackLength)

	assert.Equal(t, before, st)
}

func TestTeamStandings_Average(t *testing.T) {
	scores := map[string]DriverScore{
		"a": {Driver: "a", Team: "McLaren", Total: 30},
		"b": {Driver: "b", Team: "McLaren", Total: 50},
		"c": {Driver: "c", Team: "McLaren", Total: 100},
	}

	teams := TeamStandings(scores)

	require.Len(t, teams, 1)
	assert.Equal(t, 60.0, teams[0].AvgPoints)
	assert.Equal(t, 3, teams[0].Drivers)
}

func TestStandings_TieBreakByName(t *testing.T) {
	scores := map[string]DriverScore{
		"Zoe":   {Driver: "Zoe", Team: "Williams", Total: 40},
		"Alice": {Driver: "Alice", Team: "Alpine", Total: 40},
		"Max":   {Driver: "Max", Team: "Haas F1 Team", Total: 55},
	}

	drivers := DriverStandings(scores)
	require.Len(t, drivers, 3)
	assert.Equal(t, []string{"Max", "Alice", "Zoe"}, []string{drivers[0].Driver, drivers[1].Driver, drivers[2].Driver})

	teams := TeamStandings(scores)
	require.Len(t, teams, 3)
	assert.Equal(t, []string{"Haas F1 Team", "Alpine", "Williams"}, []string{teams[0].Team, teams[1].Team, teams[2].Team})
	assert.Equal(t, []int{1, 2, 3}, []int{teams[0].Position, teams[1].Position, teams[2].Position})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.3, Round2(0.1*20*0.15))
	assert.Equal(t, 2.0, Round2(0.1*20))
	assert.Equal(t, 12.35, Round2(12.346))
	assert.Equal(t, -7.5, Round2(-7.5))
}

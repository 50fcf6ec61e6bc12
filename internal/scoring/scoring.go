// Package scoring вычисляет зачёт пилотов и кубок конструкторов по журналу событий.
// Функции пакета не изменяют входное состояние и не возвращают ошибок.
package scoring

import (
	"cmp"
	"maps"
	"math"
	"slices"

	"github.com/mmeshcher/beer-mile/internal/model"
)

// Правила начисления очков.
const (
	PointsPerPint    = 20
	BeerVarietyBonus = 5
	PubVisitBonus    = 10
)

// Rules описывает правила начисления очков для отображения клиентам.
type Rules struct {
	PointsPerPint    int `json:"points_per_pint"`
	BeerVarietyBonus int `json:"beer_variety_bonus"`
	PubVisitBonus    int `json:"pub_visit_bonus"`
	PenaltyPoints    int `json:"penalty_points"`
}

// DefaultRules возвращает действующие правила.
func DefaultRules() Rules {
	return Rules{
		PointsPerPint:    PointsPerPint,
		BeerVarietyBonus: BeerVarietyBonus,
		PubVisitBonus:    PubVisitBonus,
		PenaltyPoints:    model.PenaltyPoints,
	}
}

// DriverScore содержит разбивку очков одного пилота.
type DriverScore struct {
	Driver            string  `json:"driver"`
	Team              string  `json:"team"`
	Pints             float64 `json:"pints"`
	ConsumptionPoints float64 `json:"consumption_points"`
	Penalties         int     `json:"penalties"`
	PenaltyPoints     int     `json:"penalty_points"`
	UniqueBeerTypes   int     `json:"unique_beer_types"`
	BeerVarietyBonus  int     `json:"beer_variety_bonus"`
	UniquePubs        int     `json:"unique_pubs"`
	PubVisitBonus     int     `json:"pub_visit_bonus"`
	Total             float64 `json:"-"`
}

type tally struct {
	score     DriverScore
	beerTypes map[string]struct{}
	pubs      map[int]struct{}
}

// Scores сворачивает журнал событий в очки каждого зарегистрированного пилота.
// События незарегистрированных пилотов пропускаются.
func Scores(users map[string]string, events []model.Event) map[string]DriverScore {
	tallies := make(map[string]*tally, len(users))
	for name, team := range users {
		tallies[name] = &tally{
			score:     DriverScore{Driver: name, Team: team},
			beerTypes: make(map[string]struct{}),
			pubs:      make(map[int]struct{}),
		}
	}

	for _, e := range events {
		t, ok := tallies[e.Driver()]
		if !ok {
			continue
		}
		switch ev := e.(type) {
		case model.BeerEvent:
			t.score.Pints += ev.Pints
			t.score.ConsumptionPoints += ev.Pints * PointsPerPint
			t.beerTypes[ev.BeerType] = struct{}{}
			t.pubs[ev.Pub] = struct{}{}
		case model.PenaltyEvent:
			t.score.PenaltyPoints += ev.Points
			t.score.Penalties++
		}
	}

	res := make(map[string]DriverScore, len(tallies))
	for name, t := range tallies {
		s := t.score
		s.UniqueBeerTypes = len(t.beerTypes)
		s.BeerVarietyBonus = s.UniqueBeerTypes * BeerVarietyBonus
		s.UniquePubs = len(t.pubs)
		s.PubVisitBonus = s.UniquePubs * PubVisitBonus
		s.Total = s.ConsumptionPoints + float64(s.PenaltyPoints+s.BeerVarietyBonus+s.PubVisitBonus)
		res[name] = s
	}
	return res
}

// DriverStanding — строка личного зачёта.
type DriverStanding struct {
	Position int     `json:"position"`
	Points   float64 `json:"points"`
	DriverScore
}

// TeamStanding — строка кубка конструкторов.
type TeamStanding struct {
	Position      int     `json:"position"`
	Team          string  `json:"team"`
	Drivers       int     `json:"drivers"`
	AvgPoints     float64 `json:"avg_points"`
	TrackPosition int     `json:"track_position"`
}

// Standings — результат расчёта обоих зачётов.
type Standings struct {
	Drivers []DriverStanding `json:"drivers"`
	Teams   []TeamStanding   `json:"teams"`
}

// Compute рассчитывает личный и командный зачёты. trackLength задаёт длину трассы
// для TeamStanding.TrackPosition.
func Compute(st *model.State, trackLength int) Standings {
	if st == nil {
		return Standings{Drivers: []DriverStanding{}, Teams: []TeamStanding{}}
	}

	scores := Scores(st.Users, st.Events)
	drivers := DriverStandings(scores)
	teams := TeamStandings(scores)

	maxAvg := MaxAverage(teams)
	for i := range teams {
		teams[i].TrackPosition = TrackPosition(teams[i].AvgPoints, maxAvg, trackLength)
	}

	return Standings{Drivers: drivers, Teams: teams}
}

// DriverStandings сортирует пилотов по округлённым очкам по убыванию, при равенстве — по имени.
func DriverStandings(scores map[string]DriverScore) []DriverStanding {
	res := make([]DriverStanding, 0, len(scores))
	for _, s := range scores {
		s.Pints = Round2(s.Pints)
		s.ConsumptionPoints = Round2(s.ConsumptionPoints)
		res = append(res, DriverStanding{Points: Round2(s.Total), DriverScore: s})
	}

	slices.SortFunc(res, func(a, b DriverStanding) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.Driver, b.Driver)
	})

	for i := range res {
		res[i].Position = i + 1
	}
	return res
}

// TeamStandings считает среднее очков на пилота в каждой команде и сортирует команды
// по среднему по убыванию, при равенстве — по названию. Среднее считается
// по неокруглённым очкам пилотов и округляется в конце.
func TeamStandings(scores map[string]DriverScore) []TeamStanding {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, name := range slices.Sorted(maps.Keys(scores)) {
		s := scores[name]
		sums[s.Team] += s.Total
		counts[s.Team]++
	}

	res := make([]TeamStanding, 0, len(sums))
	for team, sum := range sums {
		res = append(res, TeamStanding{
			Team:      team,
			Drivers:   counts[team],
			AvgPoints: Round2(sum / float64(counts[team])),
		})
	}

	slices.SortFunc(res, func(a, b TeamStanding) int {
		if c := cmp.Compare(b.AvgPoints, a.AvgPoints); c != 0 {
			return c
		}
		return cmp.Compare(a.Team, b.Team)
	})

	for i := range res {
		res[i].Position = i + 1
	}
	return res
}

// Round2 округляет значение до двух знаков после запятой.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package catalog содержит перечисления, из которых участники выбирают значения:
// команды, сорта пива и причины штрафов.
package catalog

import "slices"

// DefaultPubCount — номер последнего паба маршрута по умолчанию.
const DefaultPubCount = 200

// Catalog описывает допустимые значения команд, сортов пива, причин штрафов и диапазон пабов.
type Catalog struct {
	Teams          []string `json:"teams"`
	BeerTypes      []string `json:"beer_types"`
	PenaltyReasons []string `json:"penalty_reasons"`
	PubCount       int      `json:"pub_count"`
}

// Default возвращает каталог с командами Формулы-1 и стандартными сортами пива.
func Default() Catalog {
	return Catalog{
		Teams: []string{
			"Mercedes",
			"Red Bull Racing",
			"Ferrari",
			"McLaren",
			"Alpine",
			"Aston Martin",
			"AlphaTauri",
			"Sauber",
			"Haas F1 Team",
			"Williams",
		},
		BeerTypes: []string{
			"Lager",
			"Pilsner",
			"IPA",
			"Stout",
			"Porter",
			"Pale Ale",
			"Wheat Beer",
			"Amber Ale",
			"Belgian Ale",
			"Sour Ale",
			"Fruit Beer",
		},
		PenaltyReasons: []string{
			"Skipped Pub",
			"Incorrect Info",
		},
		PubCount: DefaultPubCount,
	}
}

// HasTeam сообщает, входит ли команда в каталог.
func (c Catalog) HasTeam(team string) bool {
	return slices.Contains(c.Teams, team)
}

// HasBeerType сообщает, входит ли сорт пива в каталог.
func (c Catalog) HasBeerType(beerType string) bool {
	return slices.Contains(c.BeerTypes, beerType)
}

// HasPenaltyReason сообщает, входит ли причина штрафа в каталог.
func (c Catalog) HasPenaltyReason(reason string) bool {
	return slices.Contains(c.PenaltyReasons, reason)
}

// HasPub сообщает, попадает ли номер паба в диапазон 1..PubCount.
// Нулевой PubCount снимает верхнюю границу.
func (c Catalog) HasPub(pub int) bool {
	if pub < 1 {
		return false
	}
	return c.PubCount <= 0 || pub <= c.PubCount
}

// WithOverrides заменяет непустые списки и положительный PubCount.
func (c Catalog) WithOverrides(teams, beerTypes, reasons []string, pubCount int) Catalog {
	if len(teams) > 0 {
		c.Teams = slices.Clone(teams)
	}
	if len(beerTypes) > 0 {
		c.BeerTypes = slices.Clone(beerTypes)
	}
	if len(reasons) > 0 {
		c.PenaltyReasons = slices.Clone(reasons)
	}
	if pubCount > 0 {
		c.PubCount = pubCount
	}
	return c
}

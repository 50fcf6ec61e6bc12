package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Len(t, c.Teams, 10)
	assert.Len(t, c.BeerTypes, 11)
	assert.Len(t, c.PenaltyReasons, 2)
	assert.Equal(t, DefaultPubCount, c.PubCount)

	assert.True(t, c.HasTeam("Ferrari"))
	assert.False(t, c.HasTeam("Alfa Romeo"))
	assert.True(t, c.HasBeerType("Fruit Beer"))
	assert.True(t, c.HasPenaltyReason("Skipped Pub"))
	assert.False(t, c.HasPenaltyReason("Spilled Beer"))
}

func TestHasPub(t *testing.T) {
	tests := []struct {
		name     string
		pubCount int
		pub      int
		want     bool
	}{
		{name: "first pub", pubCount: 200, pub: 1, want: true},
		{name: "last pub", pubCount: 200, pub: 200, want: true},
		{name: "beyond last pub", pubCount: 200, pub: 201, want: false},
		{name: "zero", pubCount: 200, pub: 0, want: false},
		{name: "negative", pubCount: 200, pub: -3, want: false},
		{name: "unbounded", pubCount: 0, pub: 5000, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Catalog{PubCount: tt.pubCount}
			assert.Equal(t, tt.want, c.HasPub(tt.pub))
		})
	}
}

func TestWithOverrides(t *testing.T) {
	teams := []string{"Brawn GP", "Jordan"}

	c := Default().WithOverrides(teams, nil, nil, 12)
	teams[0] = "changed"

	assert.Equal(t, []string{"Brawn GP", "Jordan"}, c.Teams)
	assert.Equal(t, Default().BeerTypes, c.BeerTypes)
	assert.Equal(t, Default().PenaltyReasons, c.PenaltyReasons)
	assert.Equal(t, 12, c.PubCount)

	same := Default().WithOverrides(nil, nil, nil, 0)
	assert.Equal(t, Default(), same)
}

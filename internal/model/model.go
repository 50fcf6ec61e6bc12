// Package model содержит доменные сущности пивной гонки: регистрации пилотов и журнал событий.
package model

import (
	"maps"
	"slices"
)

// PenaltyPoints — фиксированное количество очков за любой штраф.
const PenaltyPoints = -10

// Registration связывает пилота с его командой.
type Registration struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

// EventType определяет вариант события в журнале.
type EventType string

const (
	EventTypeBeer    EventType = "beer"
	EventTypePenalty EventType = "penalty"
)

// Event — событие журнала. Реализуется только типами BeerEvent и PenaltyEvent.
type Event interface {
	Type() EventType
	Driver() string
}

// BeerEvent фиксирует выпитое пиво в пабе.
type BeerEvent struct {
	User     string
	Pub      int
	BeerType string
	Pints    float64
}

// Type возвращает EventTypeBeer.
func (BeerEvent) Type() EventType { return EventTypeBeer }

// Driver возвращает имя пилота.
func (e BeerEvent) Driver() string { return e.User }

// PenaltyEvent фиксирует штраф пилота.
type PenaltyEvent struct {
	User   string
	Reason string
	Points int
}

// Type возвращает EventTypePenalty.
func (PenaltyEvent) Type() EventType { return EventTypePenalty }

// Driver возвращает имя пилота.
func (e PenaltyEvent) Driver() string { return e.User }

// NewPenalty создаёт штраф с фиксированными очками.
func NewPenalty(user, reason string) PenaltyEvent {
	return PenaltyEvent{User: user, Reason: reason, Points: PenaltyPoints}
}

// State — полное состояние приложения: пилоты по имени и журнал событий в порядке поступления.
type State struct {
	Users  map[string]string
	Events []Event
}

// NewState возвращает пустое состояние.
func NewState() *State {
	return &State{
		Users:  make(map[string]string),
		Events: []Event{},
	}
}

// Clone возвращает независимую копию состояния. События неизменяемы, поэтому копируется только срез.
func (s *State) Clone() *State {
	if s == nil {
		return NewState()
	}
	c := &State{
		Users:  maps.Clone(s.Users),
		Events: slices.Clone(s.Events),
	}
	if c.Users == nil {
		c.Users = make(map[string]string)
	}
	if c.Events == nil {
		c.Events = []Event{}
	}
	return c
}

// IsRegistered сообщает, зарегистрирован ли пилот.
func (s *State) IsRegistered(name string) bool {
	_, ok := s.Users[name]
	return ok
}

// Registrations возвращает регистрации, отсортированные по имени.
func (s *State) Registrations() []Registration {
	res := make([]Registration, 0, len(s.Users))
	for _, name := range slices.Sorted(maps.Keys(s.Users)) {
		res = append(res, Registration{Name: name, Team: s.Users[name]})
	}
	return res
}

package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownEventType возвращается при декодировании события с неизвестным полем type.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrSchemaMismatch возвращается, если в документе отсутствует обязательное поле.
	ErrSchemaMismatch = errors.New("document schema mismatch")
)

type document struct {
	Users  map[string]string `json:"users"`
	Events []eventRecord     `json:"events"`
}

type eventRecord struct {
	Type          EventType `json:"type"`
	User          *string   `json:"user"`
	Pub           *int      `json:"pub,omitempty"`
	BeerType      *string   `json:"beer_type,omitempty"`
	Pints         *float64  `json:"pints,omitempty"`
	PenaltyReason *string   `json:"penalty_reason,omitempty"`
	Points        *int      `json:"points,omitempty"`
}

// MarshalJSON кодирует состояние в формат {"users":{...},"events":[...]}.
func (s *State) MarshalJSON() ([]byte, error) {
	doc := document{
		Users:  s.Users,
		Events: make([]eventRecord, 0, len(s.Events)),
	}
	if doc.Users == nil {
		doc.Users = map[string]string{}
	}

	for i, e := range s.Events {
		switch ev := e.(type) {
		case BeerEvent:
			doc.Events = append(doc.Events, eventRecord{
				Type:     EventTypeBeer,
				User:     &ev.User,
				Pub:      &ev.Pub,
				BeerType: &ev.BeerType,
				Pints:    &ev.Pints,
			})
		case PenaltyEvent:
			doc.Events = append(doc.Events, eventRecord{
				Type:          EventTypePenalty,
				User:          &ev.User,
				PenaltyReason: &ev.Reason,
				Points:        &ev.Points,
			})
		default:
			return nil, fmt.Errorf("event %d: %w: %T", i, ErrUnknownEventType, e)
		}
	}

	return json.Marshal(doc)
}

// UnmarshalJSON декодирует документ состояния. Ошибка схемы оборачивает ErrSchemaMismatch
// или ErrUnknownEventType.
func (s *State) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	st := NewState()
	for name, team := range doc.Users {
		st.Users[name] = team
	}

	for i, rec := range doc.Events {
		e, err := rec.toEvent()
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		st.Events = append(st.Events, e)
	}

	*s = *st
	return nil
}

func (r eventRecord) toEvent() (Event, error) {
	if r.User == nil {
		return nil, fmt.Errorf("%w: missing user", ErrSchemaMismatch)
	}

	switch r.Type {
	case EventTypeBeer:
		if r.Pub == nil || r.BeerType == nil || r.Pints == nil {
			return nil, fmt.Errorf("%w: beer event requires pub, beer_type and pints", ErrSchemaMismatch)
		}
		return BeerEvent{User: *r.User, Pub: *r.Pub, BeerType: *r.BeerType, Pints: *r.Pints}, nil
	case EventTypePenalty:
		if r.PenaltyReason == nil || r.Points == nil {
			return nil, fmt.Errorf("%w: penalty event requires penalty_reason and points", ErrSchemaMismatch)
		}
		return PenaltyEvent{User: *r.User, Reason: *r.PenaltyReason, Points: *r.Points}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, r.Type)
	}
}

// Decode разбирает документ состояния.
func Decode(data []byte) (*State, error) {
	st := NewState()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Encode сериализует состояние в документ.
func Encode(s *State) ([]byte, error) {
	return json.Marshal(s)
}

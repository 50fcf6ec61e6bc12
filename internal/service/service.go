// Package service реализует команды пивной гонки: регистрацию пилотов, учёт пива и штрафов,
// и выдаёт текущий зачёт.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/mmeshcher/beer-mile/internal/catalog"
	"github.com/mmeshcher/beer-mile/internal/model"
	"github.com/mmeshcher/beer-mile/internal/scoring"
	"github.com/mmeshcher/beer-mile/internal/validation"
)

// Repository описывает контракт хранилища состояния, используемый сервисом.
type Repository interface {
	Close() error
	Load(ctx context.Context) (*model.State, bool, error)
	Save(ctx context.Context, st *model.State) error
}

// Service владеет состоянием гонки. Команды выполняются по одной: новое состояние
// сначала сохраняется в хранилище и только потом становится текущим.
type Service struct {
	repo        Repository
	catalog     catalog.Catalog
	trackLength int
	logger      *zap.Logger

	writeMu sync.Mutex
	state   atomic.Pointer[model.State]
}

// NewService создаёт сервис с пустым состоянием. Для чтения сохранённого состояния вызовите Load.
func NewService(repo Repository, cat catalog.Catalog, trackLength int, logger *zap.Logger) *Service {
	if trackLength <= 0 {
		trackLength = scoring.DefaultTrackLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		repo:        repo,
		catalog:     cat,
		trackLength: trackLength,
		logger:      logger,
	}
	s.state.Store(model.NewState())
	return s
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// Load заменяет текущее состояние сохранённым в хранилище.
func (s *Service) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	st, recovered, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if recovered {
		s.logger.Warn("stored state is corrupt, starting with empty state")
	}

	s.state.Store(st)
	s.logger.Info("state loaded", zap.Int("drivers", len(st.Users)), zap.Int("events", len(st.Events)))
	return nil
}

// Catalog возвращает допустимые значения команд, сортов пива, причин штрафов и пабов.
func (s *Service) Catalog() catalog.Catalog {
	return s.catalog
}

// Rules возвращает правила начисления очков.
func (s *Service) Rules() scoring.Rules {
	return scoring.DefaultRules()
}

// TrackLength возвращает длину трассы для визуализации кубка конструкторов.
func (s *Service) TrackLength() int {
	return s.trackLength
}

// Snapshot возвращает копию текущего состояния.
func (s *Service) Snapshot() *model.State {
	return s.state.Load().Clone()
}

// Register регистрирует пилота или переводит его в другую команду.
func (s *Service) Register(ctx context.Context, name, team string) (model.Registration, error) {
	name, err := validation.NormalizeName(name)
	if err != nil {
		return model.Registration{}, invalid("name", err.Error())
	}
	if !s.catalog.HasTeam(team) {
		return model.Registration{}, invalid("team", fmt.Sprintf("unknown team %q", team))
	}

	err = s.apply(ctx, func(st *model.State) error {
		st.Users[name] = team
		return nil
	})
	if err != nil {
		return model.Registration{}, err
	}

	return model.Registration{Name: name, Team: team}, nil
}

// LogBeer добавляет в журнал выпитое пилотом пиво.
func (s *Service) LogBeer(ctx context.Context, user string, pub int, beerType string, pints float64) (model.BeerEvent, error) {
	if !validation.IsValidPints(pints) {
		return model.BeerEvent{}, invalid("pints", fmt.Sprintf("amount must be a positive number of pints up to %d", validation.MaxPints))
	}
	if !s.catalog.HasPub(pub) {
		return model.BeerEvent{}, invalid("pub", fmt.Sprintf("pub must be between 1 and %d", s.catalog.PubCount))
	}
	if !s.catalog.HasBeerType(beerType) {
		return model.BeerEvent{}, invalid("beer_type", fmt.Sprintf("unknown beer type %q", beerType))
	}

	e := model.BeerEvent{User: strings.TrimSpace(user), Pub: pub, BeerType: beerType, Pints: pints}
	if err := s.appendEvent(ctx, e); err != nil {
		return model.BeerEvent{}, err
	}
	return e, nil
}

// LogPenalty добавляет в журнал штраф пилота.
func (s *Service) LogPenalty(ctx context.Context, user, reason string) (model.PenaltyEvent, error) {
	if !s.catalog.HasPenaltyReason(reason) {
		return model.PenaltyEvent{}, invalid("penalty_reason", fmt.Sprintf("unknown penalty reason %q", reason))
	}

	e := model.NewPenalty(strings.TrimSpace(user), reason)
	if err := s.appendEvent(ctx, e); err != nil {
		return model.PenaltyEvent{}, err
	}
	return e, nil
}

// Drivers возвращает зарегистрированных пилотов, отсортированных по имени.
func (s *Service) Drivers(ctx context.Context) []model.Registration {
	return s.state.Load().Registrations()
}

// Standings рассчитывает личный зачёт и кубок конструкторов по текущему состоянию.
func (s *Service) Standings(ctx context.Context) scoring.Standings {
	return scoring.Compute(s.state.Load(), s.trackLength)
}

func (s *Service) appendEvent(ctx context.Context, e model.Event) error {
	return s.apply(ctx, func(st *model.State) error {
		if !st.IsRegistered(e.Driver()) {
			return unknownDriver(e.Driver())
		}
		st.Events = append(st.Events, e)
		return nil
	})
}

// apply применяет fn к копии состояния, сохраняет копию и делает её текущей.
// При ошибке текущее состояние не меняется.
func (s *Service) apply(ctx context.Context, fn func(st *model.State) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.state.Load().Clone()
	if err := fn(next); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		s.logger.Error("save state error", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.state.Store(next)
	return nil
}

// Package handler содержит HTTP-обработчики API пивной гонки.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/beer-mile/internal/catalog"
	"github.com/mmeshcher/beer-mile/internal/model"
	"github.com/mmeshcher/beer-mile/internal/scoring"
	"github.com/mmeshcher/beer-mile/internal/service"
)

const maxBodyBytes = 1 << 20

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Register(ctx context.Context, name, team string) (model.Registration, error)
	LogBeer(ctx context.Context, user string, pub int, beerType string, pints float64) (model.BeerEvent, error)
	LogPenalty(ctx context.Context, user, reason string) (model.PenaltyEvent, error)
	Drivers(ctx context.Context) []model.Registration
	Standings(ctx context.Context) scoring.Standings
	Catalog() catalog.Catalog
	Rules() scoring.Rules
	TrackLength() int
}

// Handler реализует HTTP-обработчики API пивной гонки.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
	}
}

// writeJSON кодирует ответ до отправки заголовков; ошибка кодирования даёт 500.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Warn("write response error", zap.Error(err))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError переводит ошибку сервиса в HTTP-статус.
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownDriver):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error(op+" error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

type registerRequest struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

// Register регистрирует пилота в команде. Повторная регистрация меняет команду.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	reg, err := h.service.Register(r.Context(), req.Name, req.Team)
	if err != nil {
		h.writeServiceError(w, "register driver", err)
		return
	}

	h.writeJSON(w, http.StatusOK, reg)
}

// ListDrivers возвращает зарегистрированных пилотов.
func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Drivers(r.Context()))
}

type beerRequest struct {
	User     string  `json:"user"`
	Pub      int     `json:"pub"`
	BeerType string  `json:"beer_type"`
	Pints    float64 `json:"pints"`
}

type beerResponse struct {
	Type     model.EventType `json:"type"`
	User     string          `json:"user"`
	Pub      int             `json:"pub"`
	BeerType string          `json:"beer_type"`
	Pints    float64         `json:"pints"`
}

// LogBeer добавляет в журнал выпитое пиво.
func (h *Handler) LogBeer(w http.ResponseWriter, r *http.Request) {
	var req beerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	e, err := h.service.LogBeer(r.Context(), req.User, req.Pub, req.BeerType, req.Pints)
	if err != nil {
		h.writeServiceError(w, "log beer", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, beerResponse{
		Type:     e.Type(),
		User:     e.User,
		Pub:      e.Pub,
		BeerType: e.BeerType,
		Pints:    e.Pints,
	})
}

type penaltyRequest struct {
	User          string `json:"user"`
	PenaltyReason string `json:"penalty_reason"`
}

type penaltyResponse struct {
	Type          model.EventType `json:"type"`
	User          string          `json:"user"`
	PenaltyReason string          `json:"penalty_reason"`
	Points        int             `json:"points"`
}

// LogPenalty добавляет в журнал штраф.
func (h *Handler) LogPenalty(w http.ResponseWriter, r *http.Request) {
	var req penaltyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	e, err := h.service.LogPenalty(r.Context(), req.User, req.PenaltyReason)
	if err != nil {
		h.writeServiceError(w, "log penalty", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, penaltyResponse{
		Type:          e.Type(),
		User:          e.User,
		PenaltyReason: e.Reason,
		Points:        e.Points,
	})
}

// GetStandings возвращает личный зачёт и кубок конструкторов.
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Standings(r.Context()))
}

// GetTrack рисует положение команд на трассе в текстовом виде.
func (h *Handler) GetTrack(w http.ResponseWriter, r *http.Request) {
	standings := h.service.Standings(r.Context())

	var buf bytes.Buffer
	if err := scoring.WriteTrack(&buf, standings.Teams, h.service.TrackLength()); err != nil {
		h.logger.Error("render track error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type catalogResponse struct {
	catalog.Catalog
	Rules       scoring.Rules `json:"rules"`
	TrackLength int           `json:"track_length"`
}

// GetCatalog возвращает списки для выбора команды, сорта пива, паба и причины штрафа, а также правила.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, catalogResponse{
		Catalog:     h.service.Catalog(),
		Rules:       h.service.Rules(),
		TrackLength: h.service.TrackLength(),
	})
}

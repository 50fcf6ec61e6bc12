package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmeshcher/beer-mile/internal/model"
	"github.com/mmeshcher/beer-mile/internal/scoring"
)

func TestRegister_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/drivers" {
			t.Errorf("path = %s, want /api/drivers", r.URL.Path)
		}

		var req model.Registration
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(req)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	reg, err := client.Register(ctx, "Alice", "Ferrari")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if reg.Name != "Alice" || reg.Team != "Ferrari" {
		t.Fatalf("unexpected registration: %+v", reg)
	}
}

func TestLogBeer_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "user: driver Ghost is not registered", http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, err := client.LogBeer(ctx, Beer{User: "Ghost", Pub: 1, BeerType: "IPA", Pints: 0.5})
	if res != nil {
		t.Fatalf("expected nil response, got %+v", res)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "user: driver Ghost is not registered" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogPenalty_BadRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "penalty_reason: unknown penalty reason", http.StatusBadRequest)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL).LogPenalty(context.Background(), "Bob", "Bad Singing")

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 APIError, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("400 must not match ErrNotFound")
	}
}

func TestStandings_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/standings" {
			t.Errorf("path = %s, want /api/standings", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(scoring.Standings{
			Drivers: []scoring.DriverStanding{{Position: 1, Points: 25, DriverScore: scoring.DriverScore{Driver: "Alice"}}},
			Teams:   []scoring.TeamStanding{{Position: 1, Team: "Ferrari", AvgPoints: 7.5}},
		})
	}))
	defer ts.Close()

	res, err := NewClient(ts.URL).Standings(context.Background())
	if err != nil {
		t.Fatalf("Standings error: %v", err)
	}
	if len(res.Drivers) != 1 || res.Drivers[0].Driver != "Alice" {
		t.Fatalf("unexpected drivers: %+v", res.Drivers)
	}
	if len(res.Teams) != 1 || res.Teams[0].AvgPoints != 7.5 {
		t.Fatalf("unexpected teams: %+v", res.Teams)
	}
}

func TestTrack_PlainText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Ferrari (7.50 pts): --🏎️\n"))
	}))
	defer ts.Close()

	track, err := NewClient(ts.URL).Track(context.Background())
	if err != nil {
		t.Fatalf("Track error: %v", err)
	}
	if track != "Ferrari (7.50 pts): --🏎️\n" {
		t.Fatalf("track = %q", track)
	}
}

func TestNewClient_AddsScheme(t *testing.T) {
	c := NewClient("localhost:8080/")
	if c.baseURL != "http://localhost:8080" {
		t.Fatalf("baseURL = %q, want http://localhost:8080", c.baseURL)
	}
}

func TestClient_NotConfigured(t *testing.T) {
	if _, err := NewClient("").Drivers(context.Background()); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}

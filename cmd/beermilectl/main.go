// Package main — консольный клиент сервера пивной гонки.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/beer-mile/internal/client"
)

const usage = `usage: beermilectl [-s addr] <command> [flags]

commands:
  register -name NAME -team TEAM
  beer     -user NAME -pub N -type BEER [-pints 0.5]
  penalty  -user NAME -reason REASON
  standings
  track
  catalog
`

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	sugar := logger.Sugar()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(os.Stderr, err)
			os.Exit(2)
		}
		sugar.Fatalw("command failed", "error", err)
	}
}

// printUsage выводит причину ошибки, если она не сводится к запросу справки, и затем usage.
func printUsage(w io.Writer, err error) {
	if err != nil && err != flag.ErrHelp {
		fmt.Fprintf(w, "beermilectl: %v\n\n", err)
	}
	fmt.Fprint(w, usage)
}

func run(args []string, out io.Writer) error {
	global := flag.NewFlagSet("beermilectl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	addr := global.String("s", envOr("BEER_MILE_ADDRESS", "localhost:8080"), "server address")
	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		return flag.ErrHelp
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c := client.NewClient(*addr)
	cmd, cmdArgs := rest[0], rest[1:]

	switch cmd {
	case "register":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		name := fs.String("name", "", "driver name")
		team := fs.String("team", "", "team name")
		if err := fs.Parse(cmdArgs); err != nil {
			return err
		}
		reg, err := c.Register(ctx, *name, *team)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Welcome, %s! You are now driving for %s.\n", reg.Name, reg.Team)

	case "beer":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		user := fs.String("user", "", "driver name")
		pub := fs.Int("pub", 0, "pub number")
		beerType := fs.String("type", "", "beer type")
		pints := fs.Float64("pints", 0.5, "amount in pints")
		if err := fs.Parse(cmdArgs); err != nil {
			return err
		}
		beer, err := c.LogBeer(ctx, client.Beer{User: *user, Pub: *pub, BeerType: *beerType, Pints: *pints})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Beer event logged at Pub #%d!\n", beer.Pub)

	case "penalty":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		user := fs.String("user", "", "driver name")
		reason := fs.String("reason", "", "penalty reason")
		if err := fs.Parse(cmdArgs); err != nil {
			return err
		}
		p, err := c.LogPenalty(ctx, *user, *reason)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Penalty logged: %s, %d points.\n", p.User, p.Points)

	case "standings":
		standings, err := c.Standings(ctx)
		if err != nil {
			return err
		}
		return printStandings(out, standings.Drivers, standings.Teams)

	case "track":
		track, err := c.Track(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(out, track)

	case "catalog":
		cat, err := c.Catalog(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Teams: %s\n", strings.Join(cat.Teams, ", "))
		fmt.Fprintf(out, "Beer types: %s\n", strings.Join(cat.BeerTypes, ", "))
		fmt.Fprintf(out, "Penalty reasons: %s\n", strings.Join(cat.PenaltyReasons, ", "))
		fmt.Fprintf(out, "Pubs: 1-%d\n", cat.PubCount)
		fmt.Fprintf(out, "Rules: %d pts per pint, +%d per beer type, +%d per pub, %d per penalty\n",
			cat.Rules.PointsPerPint, cat.Rules.BeerVarietyBonus, cat.Rules.PubVisitBonus, cat.Rules.PenaltyPoints)

	default:
		return fmt.Errorf("unknown command %q: %w", cmd, flag.ErrHelp)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

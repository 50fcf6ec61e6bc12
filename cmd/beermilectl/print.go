package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mmeshcher/beer-mile/internal/scoring"
)

func printStandings(out io.Writer, drivers []scoring.DriverStanding, teams []scoring.TeamStanding) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "Driver's Championship")
	fmt.Fprintln(tw, "Pos\tDriver\tTeam\tPoints")
	for _, d := range drivers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\n", d.Position, d.Driver, d.Team, d.Points)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Constructor's Championship")
	fmt.Fprintln(tw, "Pos\tTeam\tDrivers\tAvg Points")
	for _, t := range teams {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\n", t.Position, t.Team, t.Drivers, t.AvgPoints)
	}

	return tw.Flush()
}

package scoring

import (
	"fmt"
	"io"
	"strings"
)

// DefaultTrackLength — длина трассы по умолчанию.
const DefaultTrackLength = 30

const (
	trackSegment = "-"
	trackCar     = "🏎️"
)

// MaxAverage возвращает наибольшее среднее среди команд или 0, если команд нет.
func MaxAverage(teams []TeamStanding) float64 {
	if len(teams) == 0 {
		return 0
	}
	maxAvg := teams[0].AvgPoints
	for _, t := range teams[1:] {
		maxAvg = max(maxAvg, t.AvgPoints)
	}
	return maxAvg
}

// TrackPosition переводит среднее команды в позицию на трассе длины length.
// При maxAvg == 0 позиция всегда 0; результат ограничен отрезком [0, length-1].
func TrackPosition(avg, maxAvg float64, length int) int {
	if length <= 0 {
		length = DefaultTrackLength
	}
	if maxAvg == 0 {
		return 0
	}

	pos := int((avg / maxAvg) * float64(length-1))
	return min(max(pos, 0), length-1)
}

// Track рисует трассу с машиной на позиции pos.
func Track(pos, length int) string {
	if length <= 0 {
		length = DefaultTrackLength
	}
	pos = min(max(pos, 0), length-1)
	return strings.Repeat(trackSegment, pos) + trackCar + strings.Repeat(trackSegment, length-pos-1)
}

// WriteTrack выводит по строке на команду в порядке командного зачёта.
func WriteTrack(w io.Writer, teams []TeamStanding, length int) error {
	for _, t := range teams {
		if _, err := fmt.Fprintf(w, "%s (%.2f pts): %s\n", t.Team, t.AvgPoints, Track(t.TrackPosition, length)); err != nil {
			return err
		}
	}
	return nil
}

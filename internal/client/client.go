// Package client defines the tracked client record and its pending time entries.
package client

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Client is a tracked work recipient. Minutes are float64 so totals built
// from fractional hours round-trip exactly through JSON.
type Client struct {
	Name           string        `json:"name"`
	TimeWorked     float64       `json:"timeWorked"`
	PotentialTimes []PendingTime `json:"potentialTimes"`
}

// PendingTime is a completed timer run awaiting confirmation or discard.
type PendingTime struct {
	Minutes float64 `json:"minutes"`
}

// New returns a client with no worked time and no pending entries.
func New(name string) Client {
	return Client{
		Name:           name,
		TimeWorked:     0,
		PotentialTimes: []PendingTime{},
	}
}

// PendingTotal sums the minutes of all pending entries.
func (c Client) PendingTotal() float64 {
	total := 0.0
	for _, p := range c.PotentialTimes {
		total += p.Minutes
	}
	return total
}

// Summary is one line of the aggregate per-client report.
type Summary struct {
	Name    string  `json:"name" yaml:"name"`
	Minutes float64 `json:"minutes" yaml:"minutes"`
	Hours   string  `json:"hours" yaml:"hours"`
	Pending int     `json:"pending" yaml:"pending"`
}

// Summarize builds the report line for c.
func Summarize(c Client) Summary {
	return Summary{
		Name:    c.Name,
		Minutes: c.TimeWorked,
		Hours:   FormatHours(c.TimeWorked),
		Pending: len(c.PotentialTimes),
	}
}

// SortedNames returns the names of clients in display order.
func SortedNames(clients map[string]Client) []string {
	names := make([]string, 0, len(clients))
	for name := range clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SplitMinutes breaks minutes into whole hours and the remainder.
// 125 -> (2, 5); 90.5 -> (1, 30.5).
func SplitMinutes(minutes float64) (hours, rem float64) {
	hours = math.Floor(minutes / 60)
	rem = math.Mod(minutes, 60)
	return hours, rem
}

// FormatMinutes renders minutes as "Xh Ym", dropping fractional minutes.
func FormatMinutes(minutes float64) string {
	hours := int(math.Floor(minutes / 60))
	mins := int(math.Floor(minutes)) % 60
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatHours renders minutes as decimal hours with two places, e.g. "1.50".
func FormatHours(minutes float64) string {
	return fmt.Sprintf("%.2f", minutes/60)
}

// FormatNumber prints a minute value without a trailing ".0" for whole numbers.
// Large values stay in positional notation.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

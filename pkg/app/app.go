// Package app defines the closed set of Fortuna companion applications that
// share the flat data file.
//
// Each application owns one section of the file, introduced by a marker line
// (its marker rune repeated five times) and bound to the application's base
// URL. The set is fixed: an unrecognized marker is a parse error, never a new
// application.
package app

import "strings"

// App identifies one of the companion applications.
type App int

const (
	// CrossRoads is the hub application ("=====").
	CrossRoads App = iota
	// Treasure ("@@@@@").
	Treasure
	// Quizz ("?????").
	Quizz
	// Roads ("+++++").
	Roads
	// Dice ("%%%%%").
	Dice
	// Quest ("$$$$$").
	Quest
)

// MarkerLen is the length of a marker line: the marker rune repeated five times.
const MarkerLen = 5

// info carries the per-application constants. Order matches the App values.
var info = [...]struct {
	name    string
	marker  rune
	baseURL string
	color   string
}{
	{"Cross-Roads", '=', "https://app.fortuna-events.fr", "#e6e6e6"},
	{"Treasure", '@', "https://treasure.fortuna-events.fr", "#a1a1e6"},
	{"Quizz", '?', "https://quizz.fortuna-events.fr", "#e6a1a1"},
	{"Roads", '+', "https://roads.fortuna-events.fr", "#a1e6a1"},
	{"Dice", '%', "https://dice.fortuna-events.fr", "#e6a1e6"},
	{"Quest", '$', "https://quest.fortuna-events.fr", "#a1e6e6"},
}

// All returns every application in declaration order.
func All() []App {
	return []App{CrossRoads, Treasure, Quizz, Roads, Dice, Quest}
}

// String returns the application's display name (e.g., "Cross-Roads").
func (a App) String() string { return info[a].name }

// Rune returns the application's marker rune (e.g., '=' for Cross-Roads).
func (a App) Rune() rune { return info[a].marker }

// Marker returns the full marker literal: the marker rune repeated five times.
func (a App) Marker() string { return strings.Repeat(string(info[a].marker), MarkerLen) }

// BaseURL returns the application's base URL, without a trailing slash.
func (a App) BaseURL() string { return info[a].baseURL }

// Color returns the fill color used for the application's nodes in previews.
func (a App) Color() string { return info[a].color }

// ByMarker returns the application bound to the given marker literal.
// The literal must be exactly the marker rune repeated five times.
func ByMarker(marker string) (App, bool) {
	for _, a := range All() {
		if marker == a.Marker() {
			return a, true
		}
	}
	return 0, false
}

// IsMarkerRune reports whether r is the marker rune of any application.
// It is used to distinguish malformed marker lines from record content.
func IsMarkerRune(r rune) bool {
	for _, a := range All() {
		if r == info[a].marker {
			return true
		}
	}
	return false
}

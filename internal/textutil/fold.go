package textutil

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// FoldTitle returns a comparison form of a film title: case folded with runs of
// whitespace collapsed to a single space.
func FoldTitle(title string) string {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return ""
	}
	return cases.Fold().String(strings.Join(fields, " "))
}

// FilmKey builds the (name, year) correlation key used to join ratings to
// diary rows. A zero year is kept as part of the key.
func FilmKey(name string, year int) string {
	return FoldTitle(name) + "|" + strconv.Itoa(year)
}

// CollapseSpace trims a value and collapses internal whitespace runs.
func CollapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

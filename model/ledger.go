package model

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Directives is an ordered collection of dated directives.
type Directives []Dated

// Ledger is the end product of reading an input: the date-sorted directives
// plus the undated records (options, includes, plugins) that are processed
// independently of ledger order.
type Ledger struct {
	Directives Directives
	Options    []*Option
	Includes   []*Include
	Plugins    []*Plugin
}

// Add appends directives, routing the undated kinds to their side lists.
func (l *Ledger) Add(directives ...Directive) {
	for _, d := range directives {
		switch v := d.(type) {
		case *Option:
			l.Options = append(l.Options, v)
		case *Include:
			l.Includes = append(l.Includes, v)
		case *Plugin:
			l.Plugins = append(l.Plugins, v)
		case Dated:
			l.Directives = append(l.Directives, v)
		}
	}
}

// Sort orders the dated directives by (date, kind priority). The sort is
// stable, so directives of the same date and priority keep their input
// order. Sorting is skipped when the slice is already ordered, the common
// case for well-maintained inputs.
func (l *Ledger) Sort() {
	if isSorted(l.Directives) {
		return
	}
	slices.SortStableFunc(l.Directives, CompareDirectives)
}

// String renders every record in canonical text form: options, plugins and
// includes first, then the dated directives in their current order.
func (l *Ledger) String() string {
	var b strings.Builder
	for _, o := range l.Options {
		b.WriteString(o.String() + "\n")
	}
	for _, p := range l.Plugins {
		b.WriteString(p.String() + "\n")
	}
	for _, i := range l.Includes {
		b.WriteString(i.String() + "\n")
	}
	for _, d := range l.Directives {
		b.WriteString(d.String() + "\n")
	}
	return b.String()
}

// CompareDirectives orders two dated directives by date, then by kind
// priority. It returns a negative number when a sorts before b.
//
// Directives other than transactions conceptually take effect at the
// beginning of their day: accounts open first, balance assertions are
// verified against the opening state before any same-day transactions
// apply, and closes take effect at the end of the day.
func CompareDirectives(a, b Dated) int {
	if c := a.When().Compare(b.When()); c != 0 {
		return c
	}
	return kindPriority(a.Kind()) - kindPriority(b.Kind())
}

// kindPriority returns the same-day processing priority for a directive
// kind. Lower values are processed first.
func kindPriority(k Kind) int {
	switch k {
	case KindOpen:
		return -2
	case KindBalance:
		return -1
	case KindDocument:
		return 1
	case KindClose:
		return 2
	default:
		return 0
	}
}

// isSorted checks whether directives are already in canonical order.
func isSorted(directives Directives) bool {
	for i := 1; i < len(directives); i++ {
		if CompareDirectives(directives[i-1], directives[i]) > 0 {
			return false
		}
	}
	return true
}

package model

// Flag indicates the status of a transaction or posting.
type Flag string

const (
	// FlagOkay marks a completed transaction ("this looks correct").
	FlagOkay Flag = "*"
	// FlagWarning marks an incomplete transaction that needs confirmation
	// or revision.
	FlagWarning Flag = "!"
	// FlagPadding marks transactions synthesized by pad directives.
	FlagPadding Flag = "P"
)

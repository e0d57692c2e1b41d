// Package model declares the record structure of a date-ordered plain-text
// accounting ledger: the directive sum type (account openings and closings,
// transactions, balance assertions, prices, pads, notes, documents, events,
// queries, custom records and the undated option/include/plugin records)
// and the value types they reference (dates, currencies, amounts, accounts,
// positions, costs, metadata).
//
// Everything in this package is an immutable value object: entities are
// constructed once, through the constructors in builders.go or directly,
// and never mutated in place. A Ledger is built by accumulating directives
// and sorting them by (date, kind priority); for equal dates, balance
// assertions logically precede that day's transactions.
//
// The model can be produced by a parser or constructed programmatically;
// lexing, file inclusion and report generation are collaborators that
// consume these types but live outside this module. Validation and
// resolution of transactions against account inventories lives in the
// ledger package.
package model

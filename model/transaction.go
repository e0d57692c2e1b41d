package model

import (
	"strings"
)

// Transaction records one financial event: a date, a flag, an optional
// payee, a narration, and at least two postings whose weights must sum to
// zero per currency (double-entry bookkeeping).
type Transaction struct {
	Date      Date
	Flag      Flag
	Payee     string
	Narration string
	Tags      []Tag
	Links     []Link
	Meta      Meta
	Postings  []*Posting
}

func (t *Transaction) Kind() Kind { return KindTransaction }
func (t *Transaction) When() Date { return t.Date }
func (t *Transaction) directive() {}

// EmptyPosting returns the single posting without an amount, if any. The
// at-most-one invariant is enforced at construction and re-checked by the
// balancer.
func (t *Transaction) EmptyPosting() (*Posting, bool) {
	for _, p := range t.Postings {
		if !p.Units.HasNum() {
			return p, true
		}
	}
	return nil, false
}

// HasTag reports whether the transaction carries the tag.
func (t *Transaction) HasTag(tag Tag) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// HasLink reports whether the transaction carries the link.
func (t *Transaction) HasLink(link Link) bool {
	for _, have := range t.Links {
		if have == link {
			return true
		}
	}
	return false
}

// String renders the transaction in its canonical multi-line form:
//
//	2014-05-05 * "Cafe Mogador" "Lamb tagine with wine" #dining
//	  Liabilities:CreditCard:CapitalOne             -37.45 USD
//	  Expenses:Food:Restaurant
func (t *Transaction) String() string {
	var b strings.Builder
	b.WriteString(t.Date.String())
	b.WriteString(" ")
	flag := t.Flag
	if flag == "" {
		flag = FlagOkay
	}
	b.WriteString(string(flag))
	if t.Payee != "" {
		b.WriteString(` "` + t.Payee + `"`)
	}
	b.WriteString(` "` + t.Narration + `"`)
	for _, tag := range t.Tags {
		b.WriteString(" #" + string(tag))
	}
	for _, link := range t.Links {
		b.WriteString(" ^" + string(link))
	}
	writeMeta(&b, postingIndent, t.Meta)
	for _, p := range t.Postings {
		b.WriteString("\n")
		p.render(&b)
		writeMeta(&b, postingIndent+postingIndent, p.Meta)
	}
	return b.String()
}

func writeMeta(b *strings.Builder, indent string, meta Meta) {
	for _, key := range meta.Keys() {
		value := meta[key]
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value.String())
	}
}

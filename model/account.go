package model

import (
	"strings"
)

// AccountType is one of the five categories every account belongs to.
type AccountType int

const (
	AccountTypeUnknown AccountType = iota
	AccountTypeAssets
	AccountTypeLiabilities
	AccountTypeEquity
	AccountTypeIncome
	AccountTypeExpenses
)

// String returns the canonical root name of the account type.
func (t AccountType) String() string {
	switch t {
	case AccountTypeAssets:
		return "Assets"
	case AccountTypeLiabilities:
		return "Liabilities"
	case AccountTypeEquity:
		return "Equity"
	case AccountTypeIncome:
		return "Income"
	case AccountTypeExpenses:
		return "Expenses"
	default:
		return "Unknown"
	}
}

// RootNames holds the root segment used for each account type. The canonical
// names (Assets, Liabilities, Equity, Income, Expenses) can be renamed
// per-ledger with the name_assets, name_liabilities, name_equity,
// name_income and name_expenses options.
type RootNames struct {
	Assets      string
	Liabilities string
	Equity      string
	Income      string
	Expenses    string
}

// DefaultRootNames returns the canonical root names.
func DefaultRootNames() RootNames {
	return RootNames{
		Assets:      "Assets",
		Liabilities: "Liabilities",
		Equity:      "Equity",
		Income:      "Income",
		Expenses:    "Expenses",
	}
}

// Rename replaces the root segment for an account type.
func (r *RootNames) Rename(t AccountType, name string) error {
	if name == "" {
		return &MissingFieldError{Entity: "root name", Field: t.String()}
	}
	switch t {
	case AccountTypeAssets:
		r.Assets = name
	case AccountTypeLiabilities:
		r.Liabilities = name
	case AccountTypeEquity:
		r.Equity = name
	case AccountTypeIncome:
		r.Income = name
	case AccountTypeExpenses:
		r.Expenses = name
	default:
		return &InvalidAccountTypeError{Name: name, Segment: name}
	}
	return nil
}

// Name returns the root segment for an account type.
func (r RootNames) Name(t AccountType) string {
	switch t {
	case AccountTypeAssets:
		return r.Assets
	case AccountTypeLiabilities:
		return r.Liabilities
	case AccountTypeEquity:
		return r.Equity
	case AccountTypeIncome:
		return r.Income
	case AccountTypeExpenses:
		return r.Expenses
	default:
		return ""
	}
}

// Type resolves a root segment back to its account type.
func (r RootNames) Type(root string) (AccountType, bool) {
	switch root {
	case r.Assets:
		return AccountTypeAssets, true
	case r.Liabilities:
		return AccountTypeLiabilities, true
	case r.Equity:
		return AccountTypeEquity, true
	case r.Income:
		return AccountTypeIncome, true
	case r.Expenses:
		return AccountTypeExpenses, true
	default:
		return AccountTypeUnknown, false
	}
}

// Format renders an account using these root names.
func (r RootNames) Format(a Account) string {
	if len(a.Parts) == 0 {
		return r.Name(a.Type)
	}
	return r.Name(a.Type) + ":" + strings.Join(a.Parts, ":")
}

// Account identifies one account by its type and the path of component
// names following the root, e.g. Assets:US:BofA:Checking has type Assets
// and parts [US BofA Checking].
//
// The set of account names seen in a ledger implicitly defines a hierarchy
// (a chart of accounts); no tree is materialized, ancestry is derived from
// the parts on demand. Accounts are never deleted once referenced; closing
// an account is a directive fact layered on top of its identity.
type Account struct {
	Type  AccountType
	Parts []string
}

// ParseAccount parses a colon-delimited account name against the canonical
// root names.
func ParseAccount(name string) (Account, error) {
	return ParseAccountIn(DefaultRootNames(), name)
}

// ParseAccountIn parses a colon-delimited account name. The first segment
// must match one of the five root names; failure is a fatal
// *InvalidAccountTypeError since an account type is required for every
// account reference. Remaining segments become parts verbatim; per-segment
// syntax validation is a lexer concern.
func ParseAccountIn(roots RootNames, name string) (Account, error) {
	segments := strings.Split(name, ":")
	t, ok := roots.Type(segments[0])
	if !ok {
		return Account{}, &InvalidAccountTypeError{Name: name, Segment: segments[0]}
	}
	var parts []string
	if len(segments) > 1 {
		parts = segments[1:]
	}
	return Account{Type: t, Parts: parts}, nil
}

// MustAccount parses an account name and panics on failure.
func MustAccount(name string) Account {
	a, err := ParseAccount(name)
	if err != nil {
		panic(err)
	}
	return a
}

// String reconstructs the colon-joined account name with canonical root
// names.
func (a Account) String() string {
	return DefaultRootNames().Format(a)
}

// Equal reports structural equality: same type, same parts.
func (a Account) Equal(other Account) bool {
	if a.Type != other.Type || len(a.Parts) != len(other.Parts) {
		return false
	}
	for i := range a.Parts {
		if a.Parts[i] != other.Parts[i] {
			return false
		}
	}
	return true
}

// IsAncestorOf reports whether a is a proper ancestor of other: both share
// the account type and a's parts are a proper prefix of other's.
func (a Account) IsAncestorOf(other Account) bool {
	if a.Type != other.Type || len(a.Parts) >= len(other.Parts) {
		return false
	}
	for i := range a.Parts {
		if a.Parts[i] != other.Parts[i] {
			return false
		}
	}
	return true
}

// Parent returns the immediate parent account. The root account of a type
// (no parts) has no parent.
func (a Account) Parent() (Account, bool) {
	if len(a.Parts) == 0 {
		return Account{}, false
	}
	return Account{Type: a.Type, Parts: a.Parts[:len(a.Parts)-1]}, true
}

// Leaf returns the last component of the account name.
func (a Account) Leaf() string {
	if len(a.Parts) == 0 {
		return a.Type.String()
	}
	return a.Parts[len(a.Parts)-1]
}

package model

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseAccount(t *testing.T) {
	t.Run("full name round-trips", func(t *testing.T) {
		account, err := ParseAccount("Assets:US:BofA:Checking")
		assert.NoError(t, err)
		assert.Equal(t, AccountTypeAssets, account.Type)
		assert.Equal(t, []string{"US", "BofA", "Checking"}, account.Parts)
		assert.Equal(t, "Assets:US:BofA:Checking", account.String())
	})

	t.Run("bare root name is a valid account", func(t *testing.T) {
		account, err := ParseAccount("Assets")
		assert.NoError(t, err)
		assert.Equal(t, AccountTypeAssets, account.Type)
		assert.Equal(t, 0, len(account.Parts))
		assert.Equal(t, "Assets", account.String())
	})

	t.Run("unknown root is rejected", func(t *testing.T) {
		_, err := ParseAccount("Aktiva:Checking")

		var terr *InvalidAccountTypeError
		assert.True(t, errors.As(err, &terr))
		assert.Equal(t, "Aktiva", terr.Segment)
	})
}

func TestParseAccountWithRenamedRoots(t *testing.T) {
	roots := DefaultRootNames()
	assert.NoError(t, roots.Rename(AccountTypeAssets, "Activa"))

	account, err := ParseAccountIn(roots, "Activa:Bank")
	assert.NoError(t, err)
	assert.Equal(t, AccountTypeAssets, account.Type)

	// The canonical root no longer resolves once renamed.
	_, err = ParseAccountIn(roots, "Assets:Bank")
	assert.Error(t, err)

	assert.Equal(t, "Activa:Bank", roots.Format(account))
}

func TestAccountAncestry(t *testing.T) {
	root := MustAccount("Assets")
	parent := MustAccount("Assets:US")
	child := MustAccount("Assets:US:BofA")

	assert.True(t, root.IsAncestorOf(child))
	assert.True(t, parent.IsAncestorOf(child))
	assert.False(t, child.IsAncestorOf(parent))
	assert.False(t, parent.IsAncestorOf(parent))
	assert.False(t, MustAccount("Expenses:US").IsAncestorOf(child))

	got, ok := child.Parent()
	assert.True(t, ok)
	assert.True(t, got.Equal(parent))

	_, ok = root.Parent()
	assert.False(t, ok)

	assert.Equal(t, "BofA", child.Leaf())
	assert.Equal(t, "Assets", root.Leaf())
}

package accounting

import (
	"sort"

	"github.com/google/uuid"
)

// AccountTree is an arena-style index over a flat list of accounts.
// Parent references are resolved by map lookup rather than object
// links, which keeps root resolution and descendant collection simple
// set operations and avoids cyclic object graphs.
type AccountTree struct {
	byID     map[uuid.UUID]*Account
	children map[uuid.UUID][]*Account
	roots    []*Account
}

// NewAccountTree builds an index from a flat account list. Accounts
// whose parent is missing from the list are treated as roots.
func NewAccountTree(accounts []Account) *AccountTree {
	t := &AccountTree{
		byID:     make(map[uuid.UUID]*Account, len(accounts)),
		children: make(map[uuid.UUID][]*Account),
	}

	for i := range accounts {
		acc := &accounts[i]
		t.byID[acc.ID] = acc
	}
	for i := range accounts {
		acc := &accounts[i]
		if acc.ParentID == nil {
			t.roots = append(t.roots, acc)
			continue
		}
		if _, ok := t.byID[*acc.ParentID]; !ok {
			// Orphaned subtree: surface it as a root rather than dropping it
			t.roots = append(t.roots, acc)
			continue
		}
		t.children[*acc.ParentID] = append(t.children[*acc.ParentID], acc)
	}

	sortAccounts(t.roots)
	for _, siblings := range t.children {
		sortAccounts(siblings)
	}

	return t
}

// sortAccounts orders accounts in tree order: account number first,
// falling back to name for accounts without numbers.
func sortAccounts(accounts []*Account) {
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].AccountNumber != accounts[j].AccountNumber {
			return accounts[i].AccountNumber < accounts[j].AccountNumber
		}
		return accounts[i].Name < accounts[j].Name
	})
}

// Size returns the number of indexed accounts
func (t *AccountTree) Size() int {
	return len(t.byID)
}

// Get returns the account with the given ID, or nil
func (t *AccountTree) Get(id uuid.UUID) *Account {
	return t.byID[id]
}

// Roots returns the root-level accounts in tree order. Both group
// roots and leaf roots (is_group false with no parent) are included;
// the report layer aggregates them identically.
func (t *AccountTree) Roots() []*Account {
	return t.roots
}

// DescendantsOf returns the account itself plus every account below it,
// in tree order. Visited tracking makes the walk safe against parent
// cycles in corrupted data.
func (t *AccountTree) DescendantsOf(id uuid.UUID) []*Account {
	start, ok := t.byID[id]
	if !ok {
		return nil
	}

	var result []*Account
	visited := make(map[uuid.UUID]bool)
	var walk func(acc *Account)
	walk = func(acc *Account) {
		if visited[acc.ID] {
			return
		}
		visited[acc.ID] = true
		result = append(result, acc)
		for _, child := range t.children[acc.ID] {
			walk(child)
		}
	}
	walk(start)

	return result
}

// DescendantIDsOf returns the ID set of an account and its descendants
func (t *AccountTree) DescendantIDsOf(id uuid.UUID) []uuid.UUID {
	descendants := t.DescendantsOf(id)
	ids := make([]uuid.UUID, len(descendants))
	for i, acc := range descendants {
		ids[i] = acc.ID
	}
	return ids
}

// RootOf resolves the root ancestor of an account by walking parent
// references. Returns nil for unknown accounts; returns the account
// itself when it is a root.
func (t *AccountTree) RootOf(id uuid.UUID) *Account {
	acc, ok := t.byID[id]
	if !ok {
		return nil
	}
	visited := make(map[uuid.UUID]bool)
	for acc.ParentID != nil && !visited[acc.ID] {
		visited[acc.ID] = true
		parent, ok := t.byID[*acc.ParentID]
		if !ok {
			break
		}
		acc = parent
	}
	return acc
}

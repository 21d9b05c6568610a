package ratings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureEntries() []Entry {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Entry{
		{ID: "r1", Value: 4, AuthorName: "Alice Anderson", AuthorEmail: "alice@example.com", AuthorAddress: "12 Oak Avenue, Boston", CreatedAt: base.Add(3 * time.Hour)},
		{ID: "r2", Value: 2, AuthorName: "Bob Brown", AuthorEmail: "bob@example.com", CreatedAt: base.Add(1 * time.Hour)},
		{ID: "r3", Value: 5, AuthorName: "Carol Chen", AuthorEmail: "carol@shop.org", AuthorAddress: "99 Pine Road, Seattle", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "r4", Value: 2, AuthorName: "Dave Davis", AuthorEmail: "dave@example.com", CreatedAt: base.Add(4 * time.Hour)},
	}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestSearch_EmptyQueryReturnsInputUnchanged(t *testing.T) {
	entries := fixtureEntries()
	got := Search(entries, "")
	assert.Equal(t, ids(entries), ids(got))
}

func TestSearch_NoMatchReturnsEmpty(t *testing.T) {
	got := Search(fixtureEntries(), "zzz-no-such-author")
	assert.Empty(t, got)
}

func TestSearch_MatchesNameEmailAddressCaseInsensitive(t *testing.T) {
	entries := fixtureEntries()

	assert.Equal(t, []string{"r1"}, ids(Search(entries, "ALICE")))
	assert.Equal(t, []string{"r3"}, ids(Search(entries, "shop.org")))
	assert.Equal(t, []string{"r3"}, ids(Search(entries, "seattle")))
	// example.com appears in three author emails
	assert.Equal(t, []string{"r1", "r2", "r4"}, ids(Search(entries, "example.com")))
}

func TestSearch_AddressOnlyWhenPresent(t *testing.T) {
	// r2 and r4 carry no address; an address-flavoured query must not match them.
	got := Search(fixtureEntries(), "road")
	assert.Equal(t, []string{"r3"}, ids(got))
}

func TestSortBy_Keys(t *testing.T) {
	entries := fixtureEntries()

	assert.Equal(t, []string{"r4", "r1", "r3", "r2"}, ids(SortBy(entries, SortLatest)))
	assert.Equal(t, []string{"r2", "r3", "r1", "r4"}, ids(SortBy(entries, SortOldest)))
	assert.Equal(t, []string{"r2", "r4", "r1", "r3"}, ids(SortBy(entries, SortRatingAsc)))
	assert.Equal(t, []string{"r3", "r1", "r2", "r4"}, ids(SortBy(entries, SortRatingDesc)))
}

func TestSortBy_DoesNotMutateInput(t *testing.T) {
	entries := fixtureEntries()
	_ = SortBy(entries, SortRatingDesc)
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, ids(entries))
}

func TestSortBy_ReversedWithoutTies(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		{ID: "a", Value: 1, CreatedAt: base},
		{ID: "b", Value: 3, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Value: 5, CreatedAt: base.Add(2 * time.Hour)},
	}
	asc := ids(SortBy(entries, SortRatingAsc))
	desc := ids(SortBy(entries, SortRatingDesc))
	require.Len(t, desc, 3)
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestSortBy_StableOnTies(t *testing.T) {
	entries := fixtureEntries()
	// r2 and r4 both have value 2; input order (r2 before r4) must survive
	// under both rating orders.
	asc := ids(SortBy(entries, SortRatingAsc))
	desc := ids(SortBy(entries, SortRatingDesc))
	assert.Equal(t, []string{"r2", "r4"}, asc[:2])
	assert.Equal(t, []string{"r2", "r4"}, desc[2:])
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortLatest, ParseSortKey(""))
	assert.Equal(t, SortLatest, ParseSortKey("latest"))
	assert.Equal(t, SortLatest, ParseSortKey("bogus"))
	assert.Equal(t, SortOldest, ParseSortKey("oldest"))
	assert.Equal(t, SortRatingAsc, ParseSortKey("rating-asc"))
	assert.Equal(t, SortRatingDesc, ParseSortKey("rating-desc"))
}

func TestValues(t *testing.T) {
	assert.Equal(t, []int{4, 2, 5, 2}, Values(fixtureEntries()))
	assert.Empty(t, Values(nil))
}

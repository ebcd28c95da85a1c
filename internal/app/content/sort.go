package content

import (
	"sort"
	"sync"

	"github.com/yigit/camnote/internal/app/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey is the field a list is ordered by
type SortKey string

// SortOrder is the direction of a sort
type SortOrder string

const (
	SortByTitle SortKey = "title"
	SortByDate  SortKey = "date"

	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// SortState is the current ordering of a view list
type SortState struct {
	Key   SortKey
	Order SortOrder
}

// DefaultSort is newest first
var DefaultSort = SortState{Key: SortByDate, Order: Desc}

// defaultOrder is the order a key starts with when first selected
func defaultOrder(key SortKey) SortOrder {
	if key == SortByTitle {
		return Asc
	}
	return Desc
}

// ParseSort reads a sort state from query values. Unknown values fall back to
// DefaultSort, a missing order to the key's default order.
func ParseSort(key, order string) SortState {
	k := SortKey(key)
	if k != SortByTitle && k != SortByDate {
		return DefaultSort
	}
	o := SortOrder(order)
	if o != Asc && o != Desc {
		o = defaultOrder(k)
	}
	return SortState{Key: k, Order: o}
}

// Toggle returns the state after clicking the control for key: the same key
// flips direction, another key starts at its default direction.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		if s.Order == Asc {
			return SortState{Key: key, Order: Desc}
		}
		return SortState{Key: key, Order: Asc}
	}
	return SortState{Key: key, Order: defaultOrder(key)}
}

// collator is not safe for concurrent use
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.Korean)
)

func compareTitles(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// SortItems orders items in place. Titles use Korean collation, a missing
// creation time counts as the zero instant. Equal items keep their order.
func SortItems(items []*models.ContentItem, state SortState) {
	less := func(i, j int) bool {
		a, b := items[i], items[j]
		var cmp int
		switch state.Key {
		case SortByTitle:
			cmp = compareTitles(a.Title, b.Title)
		default:
			cmp = a.CreatedAtOrZero().Compare(b.CreatedAtOrZero())
		}
		if state.Order == Desc {
			return cmp > 0
		}
		return cmp < 0
	}
	sort.SliceStable(items, less)
}

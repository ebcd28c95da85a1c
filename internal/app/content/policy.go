package content

import (
	"strings"

	"github.com/yigit/camnote/internal/app/models"
)

// FilterMode says where department filtering of a view list happens
type FilterMode int

const (
	// FilterInStore asks the store for the department's items only
	FilterInStore FilterMode = iota
	// FilterInProcess fetches the whole collection and filters it here
	FilterInProcess
)

// Policy describes how one category is listed and linked
type Policy struct {
	Category   models.Category
	ListPath   string
	DetailPath string
	Filter     FilterMode
}

var policies = map[models.Category]Policy{
	models.CategoryNotices: {
		Category:   models.CategoryNotices,
		ListPath:   "/notices",
		DetailPath: "/noticedetail/:id",
		Filter:     FilterInStore,
	},
	models.CategoryEvents: {
		Category:   models.CategoryEvents,
		ListPath:   "/events",
		DetailPath: "/eventnewsdetail/:id",
		Filter:     FilterInProcess,
	},
	models.CategoryBenefits: {
		Category:   models.CategoryBenefits,
		ListPath:   "/benefits",
		DetailPath: "/benefitdetail/:id",
		Filter:     FilterInProcess,
	},
}

// PolicyFor returns the policy of a category
func PolicyFor(category models.Category) (Policy, bool) {
	p, ok := policies[category]
	return p, ok
}

// DetailPathFor builds the front-end detail path of an item
func (p Policy) DetailPathFor(id string) string {
	return strings.Replace(p.DetailPath, ":id", id, 1)
}

// FilterByDepartment keeps the items whose department equals department exactly
func FilterByDepartment(items []*models.ContentItem, department string) []*models.ContentItem {
	filtered := make([]*models.ContentItem, 0, len(items))
	for _, item := range items {
		if item.Department == department {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

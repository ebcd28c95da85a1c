// Package navigation holds the front-end route table the API hands out
// redirects into.
package navigation

import "strings"

// Route is one front-end page
type Route struct {
	Path       string
	Page       string
	Admin      bool
	RedirectTo string
}

// Front-end paths used as redirect targets
const (
	PathRoot             = "/"
	PathLogin            = "/login"
	PathSignup           = "/signup"
	PathVerify           = "/verify"
	PathMajor            = "/major"
	PathMajorCheck       = "/major-check"
	PathHome             = "/home"
	PathNotices          = "/notices"
	PathEvents           = "/events"
	PathBenefits         = "/benefits"
	PathFeedback         = "/feedback"
	PathAdminSelectMajor = "/admin/select-major"
	PathAdminDashboard   = "/admin/dashboard/:major"
	PathAdminNotices     = "/admin/notices"
	PathAdminEvents      = "/admin/events"
	PathAdminBenefits    = "/admin/benefits"
	PathAdminFeedbacks   = "/admin/feedbacks"
	PathAdminUsers       = "/admin/users"
)

var routes = []Route{
	{Path: PathRoot, Page: "Root", RedirectTo: PathLogin},
	{Path: PathLogin, Page: "Login"},
	{Path: PathSignup, Page: "Register"},
	{Path: PathVerify, Page: "SetAffiliationInformation"},
	{Path: PathMajor, Page: "UserMajorSelection"},
	{Path: PathMajorCheck, Page: "UserMajorRedirect"},
	{Path: PathHome, Page: "Home"},
	{Path: PathNotices, Page: "ViewNotice"},
	{Path: PathEvents, Page: "ViewEventNews"},
	{Path: PathBenefits, Page: "ViewBenefit"},
	{Path: PathFeedback, Page: "SubmitFeedback"},
	{Path: "/noticedetail/:id", Page: "NoticeDetail"},
	{Path: "/eventnewsdetail/:id", Page: "EventNewsDetail"},
	{Path: "/benefitdetail/:id", Page: "BenefitDetail"},
	{Path: "/notices/:id", Page: "NoticeDetail"},
	{Path: "/events/:id", Page: "EventNewsDetail"},
	{Path: "/benefits/:id", Page: "BenefitDetail"},
	{Path: PathAdminSelectMajor, Page: "AdminMajorSelection", Admin: true},
	{Path: PathAdminDashboard, Page: "AdminDashboard", Admin: true},
	{Path: PathAdminNotices, Page: "ManageNotice", Admin: true},
	{Path: PathAdminEvents, Page: "ManageEventNews", Admin: true},
	{Path: PathAdminBenefits, Page: "ManageBenefit", Admin: true},
	{Path: PathAdminFeedbacks, Page: "ResponseFeedback", Admin: true},
	{Path: PathAdminUsers, Page: "ManageUserList", Admin: true},
}

var navBarPrefixes = []string{PathHome, PathNotices, PathEvents, PathBenefits, PathFeedback}

// Routes returns a copy of the route table
func Routes() []Route {
	return append([]Route(nil), routes...)
}

// ShowsNavBar reports whether the page at path is drawn with the nav bar
func ShowsNavBar(path string) bool {
	for _, prefix := range navBarPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Match is the result of resolving a concrete path
type Match struct {
	Route      Route
	Params     map[string]string
	ShowNavBar bool
}

// Resolve finds the route for a concrete path such as "/noticedetail/abc".
// Query strings and a trailing slash are ignored.
func Resolve(path string) (Match, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	for _, r := range routes {
		if params, ok := matchPattern(r.Path, path); ok {
			return Match{Route: r, Params: params, ShowNavBar: ShowsNavBar(path)}, true
		}
	}
	return Match{}, false
}

func matchPattern(pattern, path string) (map[string]string, bool) {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")
	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	var params map[string]string
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			if pathParts[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[part[1:]] = pathParts[i]
			continue
		}
		if part != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}

// Expand fills the ":name" segments of a route pattern
func Expand(pattern string, params map[string]string) string {
	parts := strings.Split(pattern, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			parts[i] = params[part[1:]]
		}
	}
	return strings.Join(parts, "/")
}

// AdminDashboardPath is the dashboard of one department
func AdminDashboardPath(department string) string {
	return Expand(PathAdminDashboard, map[string]string{"major": department})
}

package dto

// DepartmentListResponse lists the known departments
type DepartmentListResponse struct {
	Departments []string `json:"departments"`
}

// SelectDepartmentRequest carries a typed department name
type SelectDepartmentRequest struct {
	Department string `json:"department" example:"컴퓨터공학과"`
}

// DepartmentResponse reports a stored department and where to go next
type DepartmentResponse struct {
	Department string `json:"department"`
	Redirect   string `json:"redirect,omitempty" example:"/home"`
}

// RedirectResponse carries only a navigation target
type RedirectResponse struct {
	Redirect string `json:"redirect" example:"/home"`
}

// DashboardLink is one management entry on the admin dashboard
type DashboardLink struct {
	Label string `json:"label" example:"공지사항 관리"`
	Path  string `json:"path" example:"/admin/notices?major=컴퓨터공학과"`
}

// AdminDashboardResponse is the admin landing page for a department
type AdminDashboardResponse struct {
	Department string          `json:"department,omitempty"`
	Links      []DashboardLink `json:"links,omitempty"`
	Redirect   string          `json:"redirect,omitempty" example:"/admin/select-major"`
}

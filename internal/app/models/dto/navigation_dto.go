package dto

// RouteResponse describes one front-end route
type RouteResponse struct {
	Path       string `json:"path" example:"/noticedetail/:id"`
	Page       string `json:"page" example:"NoticeDetail"`
	Admin      bool   `json:"admin"`
	ShowNavBar bool   `json:"showNavBar"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// ResolveResponse is the outcome of matching a path against the route table
type ResolveResponse struct {
	Path       string            `json:"path"`
	Found      bool              `json:"found"`
	Page       string            `json:"page,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
	ShowNavBar bool              `json:"showNavBar"`
	Redirect   string            `json:"redirect,omitempty"`
}

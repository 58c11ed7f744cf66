package navigation

// Nav is the header view model embedded in every page response. The
// frontend shell renders it as-is, once per page load.
type Nav struct {
	Brand      string `json:"brand"`
	Links      []Link `json:"links,omitempty"`
	ShowLogout bool   `json:"showLogout"`
	LogoutURL  string `json:"logoutUrl,omitempty"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

const brand = "MySocialApp"

// For builds the nav for the given route. The shell renders nothing on
// the login and register routes; the standard link set is suppressed on
// /myposts; the logout control shows only with a live session.
func For(path string, loggedIn bool) *Nav {
	if path == "/" || path == "/login" || path == "/register" {
		return nil
	}

	nav := &Nav{
		Brand:      brand,
		ShowLogout: loggedIn,
	}
	if loggedIn {
		nav.LogoutURL = "/logout"
	}

	if path != "/myposts" {
		nav.Links = []Link{
			{Label: "Home", URL: "/"},
			{Label: "Users", URL: "/users"},
			{Label: "Posts", URL: "/posts"},
			{Label: "Dashboard", URL: "/chart"},
		}
	}

	return nav
}

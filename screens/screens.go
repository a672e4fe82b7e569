// Package screens maps client paths to the app's screens.
package screens

// Screen identifies one page of the client.
type Screen string

const (
	Login        Screen = "login"
	OTP          Screen = "verify-otp"
	Dashboard    Screen = "dashboard"
	ReportWizard Screen = "report"
	Reports      Screen = "reports"
	NotFound     Screen = "not-found"
)

// Paths of the routed screens.
const (
	PathLogin     = "/"
	PathOTP       = "/verify-otp"
	PathDashboard = "/dashboard"
	PathReport    = "/report"
	PathReports   = "/reports"
)

var routes = map[string]Screen{
	PathLogin:     Login,
	PathOTP:       OTP,
	PathDashboard: Dashboard,
	PathReport:    ReportWizard,
	PathReports:   Reports,
}

// NavItem is one button of the bottom navigation bar.
type NavItem struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

var navItems = []NavItem{
	{Label: "Home", Path: PathDashboard},
	{Label: "Report", Path: PathReport},
	{Label: "My Reports", Path: PathReports},
}

// Action is a button offered on the Not Found screen. An empty Path means
// history back.
type Action struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
	Path  string `json:"path,omitempty"`
}

// Resolution is how the client should render a path.
type Resolution struct {
	Path      string    `json:"path"`
	Screen    Screen    `json:"screen"`
	Found     bool      `json:"found"`
	BottomNav []NavItem `json:"bottomNav,omitempty"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message,omitempty"`
	Actions   []Action  `json:"actions,omitempty"`
}

// Resolve matches path exactly against the route table. Anything else is
// Not Found, with the recovery actions attached.
func Resolve(path string) Resolution {
	if path == "" {
		path = PathLogin
	}
	screen, ok := routes[path]
	if !ok {
		return NotFoundResolution(path)
	}
	return Resolution{
		Path:      path,
		Screen:    screen,
		Found:     true,
		BottomNav: BottomNav(path),
	}
}

func NotFoundResolution(path string) Resolution {
	return Resolution{
		Path:    path,
		Screen:  NotFound,
		Found:   false,
		Title:   "Page Not Found",
		Message: "Oops! The page you're looking for doesn't exist or has been moved.",
		Actions: []Action{
			{Label: "Go Back", Kind: "back"},
			{Label: "Go to Dashboard", Kind: "navigate", Path: PathDashboard},
		},
	}
}

// ShowsBottomNav reports whether the bar is drawn under path.
func ShowsBottomNav(path string) bool {
	for _, item := range navItems {
		if item.Path == path {
			return true
		}
	}
	return false
}

// BottomNav returns the bar for path with the matching item flagged, or nil
// where the bar is hidden.
func BottomNav(path string) []NavItem {
	if !ShowsBottomNav(path) {
		return nil
	}
	items := make([]NavItem, len(navItems))
	for i, item := range navItems {
		item.Active = item.Path == path
		items[i] = item
	}
	return items
}

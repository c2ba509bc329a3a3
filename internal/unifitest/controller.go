// Package unifitest runs an in-memory UniFi controller for tests.
package unifitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"unifi-admin-remover/pkg/models"
)

const sessionCookie = "unifises"

// Controller fakes the handful of endpoints the client talks to. Fields may
// be set before the first request; calls are recorded for assertions.
type Controller struct {
	Username string
	Password string

	Sites  []models.Site
	Admins map[string][]models.Admin // keyed by site name

	// Status overrides, keyed by site name. Zero means 200.
	GetAdminsStatus map[string]int
	RevokeStatus    map[string]int
	SitesStatus     int

	mu          sync.Mutex
	logins      int
	sitesCalls  int
	adminsCalls []string
	revokeCalls []string
	revokeIDs   []string

	server *httptest.Server
}

func NewController() *Controller {
	c := &Controller{
		Username:        "admin",
		Password:        "secret",
		Admins:          map[string][]models.Admin{},
		GetAdminsStatus: map[string]int{},
		RevokeStatus:    map[string]int{},
	}
	c.server = httptest.NewServer(http.HandlerFunc(c.handle))
	return c
}

func (c *Controller) URL() string { return c.server.URL }

func (c *Controller) Close() { c.server.Close() }

// AddSite registers a site with the given admins.
func (c *Controller) AddSite(name string, admins ...models.Admin) {
	c.Sites = append(c.Sites, models.Site{ID: "id-" + name, Name: name, Desc: strings.ToUpper(name)})
	c.Admins[name] = admins
}

func (c *Controller) Logins() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logins
}

func (c *Controller) SitesCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sitesCalls
}

func (c *Controller) AdminsCalls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.adminsCalls...)
}

// RevokeCalls returns the sites revoke-admin was sent to, in order.
func (c *Controller) RevokeCalls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.revokeCalls...)
}

// RevokeIDs returns the admin ids sent with each revoke-admin call.
func (c *Controller) RevokeIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.revokeIDs...)
}

func (c *Controller) handle(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.URL.Path == "/api/login" && r.Method == http.MethodPost {
		c.login(w, r)
		return
	}

	if cookie, err := r.Cookie(sessionCookie); err != nil || cookie.Value != "session-token" {
		writeError(w, http.StatusUnauthorized, "api.err.LoginRequired")
		return
	}

	switch {
	case r.URL.Path == "/api/self/sites" && r.Method == http.MethodGet:
		c.sitesCalls++
		if c.SitesStatus != 0 {
			writeError(w, c.SitesStatus, "api.err.Fail")
			return
		}
		writeData(w, c.Sites)

	case strings.HasPrefix(r.URL.Path, "/api/s/") && strings.HasSuffix(r.URL.Path, "/cmd/sitemgr") && r.Method == http.MethodPost:
		site := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/s/"), "/cmd/sitemgr")
		c.sitemgr(w, r, site)

	default:
		writeError(w, http.StatusNotFound, "api.err.NotFound")
	}
}

func (c *Controller) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "api.err.Invalid")
		return
	}
	c.logins++
	if body.Username != c.Username || body.Password != c.Password {
		writeError(w, http.StatusBadRequest, "api.err.Invalid")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "session-token", Path: "/"})
	writeData(w, []any{})
}

func (c *Controller) sitemgr(w http.ResponseWriter, r *http.Request, site string) {
	var cmd models.SiteManagerCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "api.err.Invalid")
		return
	}

	switch cmd.Cmd {
	case "get-admins":
		c.adminsCalls = append(c.adminsCalls, site)
		if status := c.GetAdminsStatus[site]; status != 0 {
			writeError(w, status, "api.err.Fail")
			return
		}
		admins, ok := c.Admins[site]
		if !ok {
			writeError(w, http.StatusBadRequest, "api.err.NoSiteContext")
			return
		}
		writeData(w, admins)

	case "revoke-admin":
		c.revokeCalls = append(c.revokeCalls, site)
		c.revokeIDs = append(c.revokeIDs, cmd.Admin)
		if status := c.RevokeStatus[site]; status != 0 {
			writeError(w, status, "api.err.Fail")
			return
		}
		if !c.hasAdmin(site, cmd.Admin) {
			writeError(w, http.StatusBadRequest, "api.err.InvalidTarget")
			return
		}
		c.Admins[site] = removeAdmin(c.Admins[site], cmd.Admin)
		writeData(w, []any{})

	default:
		writeError(w, http.StatusBadRequest, "api.err.UnknownCommand")
	}
}

func (c *Controller) hasAdmin(site, id string) bool {
	for _, a := range c.Admins[site] {
		if a.ID == id {
			return true
		}
	}
	return false
}

func removeAdmin(admins []models.Admin, id string) []models.Admin {
	out := admins[:0:0]
	for _, a := range admins {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"meta": models.Meta{RC: "ok"},
		"data": data,
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"meta": models.Meta{RC: "error", Msg: msg},
		"data": []any{},
	})
}

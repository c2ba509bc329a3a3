package models

import "sort"

// AdminListResponse wraps the get-admins sitemgr command
type AdminListResponse struct {
	Meta Meta    `json:"meta"`
	Data []Admin `json:"data"`
}

type Admin struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// SiteManagerCommand is the body for POST /api/s/{site}/cmd/sitemgr
type SiteManagerCommand struct {
	Cmd   string `json:"cmd"`
	Admin string `json:"admin,omitempty"`
}

// AdminEntry is the (name, id) pair collected across sites.
type AdminEntry struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// MergeAdmins appends every admin not already present in entries, keyed on
// the full (name, id) pair. First-seen order is kept.
func MergeAdmins(entries []AdminEntry, admins []Admin) []AdminEntry {
	seen := make(map[AdminEntry]struct{}, len(entries)+len(admins))
	for _, e := range entries {
		seen[e] = struct{}{}
	}
	for _, a := range admins {
		e := AdminEntry{Name: a.Name, ID: a.ID}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		entries = append(entries, e)
	}
	return entries
}

// SortByName orders entries by name, byte-wise ascending. Equal names keep
// their relative order.
func SortByName(entries []AdminEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}

// FindByID returns the first entry whose ID equals id exactly.
func FindByID(entries []AdminEntry, id string) (AdminEntry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return AdminEntry{}, false
}

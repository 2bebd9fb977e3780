package domain

import "slices"

const (
	ModuleMeetings = "meetings"
	ModuleBoards   = "boards"
)

type Permission string

const (
	PermViewMeetings   Permission = "view_meetings"
	PermCreateMeetings Permission = "create_meetings"
	PermViewBoards     Permission = "view_boards"
	PermManageBoards   Permission = "manage_boards"
)

type Project struct {
	ID             int64    `db:"id"`
	Identifier     string   `db:"identifier"`
	Name           string   `db:"name"`
	EnabledModules []string `db:"enabled_modules"`
}

func (p *Project) ModuleEnabled(name string) bool {
	return slices.Contains(p.EnabledModules, name)
}

// Membership: права пользователя в конкретном проекте.
type Membership struct {
	Project     Project
	UserID      int64
	Permissions []Permission
}

func (m *Membership) Allowed(perm Permission) bool {
	return slices.Contains(m.Permissions, perm)
}

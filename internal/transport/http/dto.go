package http

import (
	"time"

	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/listing"
	"github.com/cwrk-planet/meeting-service/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ParticipantItem struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

type MeetingItem struct {
	ID              string            `json:"id"`
	ProjectID       int64             `json:"project_id"`
	Title           string            `json:"title"`
	Location        string            `json:"location,omitempty"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         time.Time         `json:"end_time"`
	DurationMinutes int               `json:"duration_minutes"`
	AuthorID        int64             `json:"author_id"`
	Ongoing         bool              `json:"ongoing"`
	Participants    []ParticipantItem `json:"participants"`
}

type FilterItem struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type MeetingsPageResponse struct {
	Items          []MeetingItem `json:"items"`
	Page           int           `json:"page"`
	PerPage        int           `json:"per_page"`
	Total          int           `json:"total"`
	TotalPages     int           `json:"total_pages"`
	Filter         string        `json:"filter"`
	Filters        []FilterItem  `json:"filters"`
	PerPageOptions []int         `json:"per_page_options"`
	Project        string        `json:"project,omitempty"`
	CanCreate      bool          `json:"can_create"`
}

type CreateMeetingRequest struct {
	Title           string    `json:"title"`
	Location        string    `json:"location"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Invitees        []int64   `json:"invitees"`
}

type AddParticipantRequest struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"` // invitee|attendee, по умолчанию invitee
}

type BoardItem struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ProjectItem struct {
	ID         int64  `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

type ProjectBoardsItem struct {
	Project ProjectItem `json:"project"`
	Boards  []BoardItem `json:"boards"`
}

type BoardsListResponse struct {
	Items []BoardItem `json:"items"`
}

type BoardsOverviewResponse struct {
	Projects []ProjectBoardsItem `json:"projects"`
}

type BoardDraftResponse struct {
	Project  *ProjectItem  `json:"project,omitempty"`
	Projects []ProjectItem `json:"projects"`
}

type CreateBoardRequest struct {
	Name    string `json:"name"`
	Project string `json:"project"` // slug или id; для /projects/{projectID}/boards берётся из пути
}

func toMeetingItem(m *domain.Meeting, now time.Time) MeetingItem {
	item := MeetingItem{
		ID:              m.ID,
		ProjectID:       m.ProjectID,
		Title:           m.Title,
		Location:        m.Location,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime(),
		DurationMinutes: int(m.Duration / time.Minute),
		AuthorID:        m.AuthorID,
		Ongoing:         m.IsOngoing(now),
		Participants:    make([]ParticipantItem, 0, len(m.Participants)),
	}
	for _, p := range m.Participants {
		item.Participants = append(item.Participants, ParticipantItem{UserID: p.UserID, Role: string(p.Role)})
	}
	return item
}

func toPageResponse(res *service.ListResult, now time.Time, perPageOptions []int) MeetingsPageResponse {
	resp := MeetingsPageResponse{
		Items:          make([]MeetingItem, 0, len(res.Page.Items)),
		Page:           res.Page.Page,
		PerPage:        res.Page.PerPage,
		Total:          res.Page.Total,
		TotalPages:     res.Page.TotalPages,
		Filter:         string(res.Filter),
		Filters:        make([]FilterItem, 0, len(listing.Filters)),
		PerPageOptions: perPageOptions,
		CanCreate:      res.CanCreate,
	}
	for i := range res.Page.Items {
		resp.Items = append(resp.Items, toMeetingItem(&res.Page.Items[i], now))
	}
	for _, f := range listing.Filters {
		resp.Filters = append(resp.Filters, FilterItem{Key: string(f), Label: f.Label(), Selected: f == res.Filter})
	}
	if res.Project != nil {
		resp.Project = res.Project.Identifier
	}
	return resp
}

func toBoardItem(b domain.Board) BoardItem {
	return BoardItem{ID: b.ID, ProjectID: b.ProjectID, Name: b.Name, CreatedAt: b.CreatedAt}
}

func toBoardItems(bs []domain.Board) []BoardItem {
	out := make([]BoardItem, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBoardItem(b))
	}
	return out
}

func toProjectItem(p domain.Project) ProjectItem {
	return ProjectItem{ID: p.ID, Identifier: p.Identifier, Name: p.Name}
}

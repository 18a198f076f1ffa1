package timesheet

const (
	ActionDraft  = "draft"
	ActionSave   = "save"
	ActionSubmit = "submit"
)

// CellInput is one grid cell as typed by the user. Hours stays a
// string so drafts can hold whatever was entered and validation can
// point at the exact cell.
type CellInput struct {
	ProjectID string `json:"project_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	Hours     string `json:"hours"`
}

type SaveWeekRequest struct {
	Action string      `json:"action" binding:"required,oneof=draft save submit"`
	Cells  []CellInput `json:"cells"`
}

type AddRowRequest struct {
	ProjectID string `json:"project_id" binding:"required,uuid"`
}

type ProjectRow struct {
	ProjectID   string             `json:"project_id"`
	ProjectCode string             `json:"project_code"`
	ProjectName string             `json:"project_name"`
	Hours       map[string]float64 `json:"hours"`
	RowTotal    float64            `json:"row_total"`
}

type LeaveDay struct {
	Date          string `json:"date"`
	LeaveTypeCode string `json:"leave_type_code"`
}

// WeekResponse is the full grid for one ISO week.
type WeekResponse struct {
	Year      int      `json:"year"`
	Week      int      `json:"week"`
	WeekStart string   `json:"week_start"`
	WeekEnd   string   `json:"week_end"`
	Days      []string `json:"days"`

	Rows          []ProjectRow       `json:"rows"`
	DayTotals     map[string]float64 `json:"day_totals"`
	WeekTotal     float64            `json:"week_total"`
	LeaveDays     []LeaveDay         `json:"leave_days"`
	FromDraft     bool               `json:"from_draft"`
	LastSubmitted string             `json:"last_submitted,omitempty"`

	AvailableProjects []ProjectOption `json:"available_projects"`

	PrevYear int `json:"prev_year"`
	PrevWeek int `json:"prev_week"`
	NextYear int `json:"next_year"`
	NextWeek int `json:"next_week"`
}

type ProjectOption struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type SaveWeekResponse struct {
	Action    string  `json:"action"`
	Saved     int     `json:"saved"`
	WeekTotal float64 `json:"week_total"`
	Submitted bool    `json:"submitted"`
}

// RowResponse backs the add-row confirmation: a single zero-or-draft
// filled row for the chosen project.
type RowResponse struct {
	Row  ProjectRow `json:"row"`
	Days []string   `json:"days"`
}

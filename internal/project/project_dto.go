package project

type CreateProjectRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

type MemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type ProjectResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// ProjectOption is the lightweight shape for roster drop-downs.
type ProjectOption struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

package leavetype

type CreateLeaveTypeRequest struct {
	Code             string `json:"code" binding:"required,max=10"`
	Name             string `json:"name" binding:"required,max=50"`
	Description      string `json:"description"`
	RequiresApproval *bool  `json:"requires_approval"`
}

type UpdateLeaveTypeRequest struct {
	Name             string `json:"name" binding:"required,max=50"`
	Description      string `json:"description"`
	RequiresApproval *bool  `json:"requires_approval"`
	Active           *bool  `json:"active"`
}

type LeaveTypeResponse struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	RequiresApproval bool   `json:"requires_approval"`
	Active           bool   `json:"active"`
}

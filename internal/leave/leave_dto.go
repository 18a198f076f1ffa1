package leave

// DefaultPageSize matches the listing page length of the HR portal.
const DefaultPageSize = 10

type CreateLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Comments    string `json:"comments"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ListFilter struct {
	Status      string `form:"status"`
	LeaveTypeID string `form:"leave_type_id"`
	DateFrom    string `form:"date_from"`
	DateTo      string `form:"date_to"`
	Page        int    `form:"page"`
}

type CalculateDaysRequest struct {
	StartDate   string `form:"start_date" binding:"required"`
	EndDate     string `form:"end_date" binding:"required"`
	LeaveTypeID string `form:"leave_type_id"`
}

type CalculateDaysResponse struct {
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalDays      float64 `json:"total_days"`
	BalanceWarning bool    `json:"balance_warning"`
	BalanceMessage string  `json:"balance_message,omitempty"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	UserName        string  `json:"user_name"`
	EmployeeNumber  string  `json:"employee_number"`
	LeaveTypeID     string  `json:"leave_type_id"`
	LeaveTypeCode   string  `json:"leave_type_code"`
	LeaveTypeName   string  `json:"leave_type_name"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       float64 `json:"total_days"`
	Comments        string  `json:"comments,omitempty"`
	Status          string  `json:"status"`
	ApprovedBy      string  `json:"approved_by,omitempty"`
	ApprovedAt      string  `json:"approved_at,omitempty"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// DashboardResponse backs the landing page: the user's own recent
// requests plus, for managers, the queue awaiting their decision and
// their latest decisions.
type DashboardResponse struct {
	RecentRequests   []LeaveResponse `json:"recent_requests"`
	PendingApprovals []LeaveResponse `json:"pending_approvals"`
	PendingCount     int             `json:"pending_count"`
	RecentDecisions  []LeaveResponse `json:"recent_decisions"`
}

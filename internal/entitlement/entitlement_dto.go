package entitlement

type GrantRequest struct {
	UserID        string  `json:"user_id" binding:"required,uuid"`
	LeaveTypeID   string  `json:"leave_type_id" binding:"required,uuid"`
	Year          int     `json:"year" binding:"required,min=2000,max=2100"`
	AllocatedDays float64 `json:"allocated_days" binding:"required,gt=0"`
}

type UpdateGrantRequest struct {
	AllocatedDays float64 `json:"allocated_days" binding:"required,gt=0"`
}

type EntitlementResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeCode string  `json:"leave_type_code"`
	LeaveTypeName string  `json:"leave_type_name"`
	Year          int     `json:"year"`
	AllocatedDays float64 `json:"allocated_days"`
}

// Balance is one row of the yearly leave summary.
type Balance struct {
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeCode string  `json:"leave_type_code"`
	LeaveTypeName string  `json:"leave_type_name"`
	Year          int     `json:"year"`
	Allocated     float64 `json:"allocated"`
	Used          float64 `json:"used"`
	Remaining     float64 `json:"remaining"`
}

package user

type CreateUserRequest struct {
	Username       string  `json:"username" binding:"required"`
	FullName       string  `json:"full_name" binding:"required"`
	Email          string  `json:"email" binding:"omitempty,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	Role           string  `json:"role" binding:"omitempty,oneof=EMPLOYEE MANAGER ADMIN"`
	EmployeeNumber string  `json:"employee_number"`
	ManagerID      *string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role" binding:"omitempty,oneof=EMPLOYEE MANAGER ADMIN"`
	Active   *bool  `json:"active"`
}

type AssignManagerRequest struct {
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type UserResponse struct {
	ID             string  `json:"id"`
	EmployeeNumber string  `json:"employee_number"`
	Username       string  `json:"username"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	ManagerID      *string `json:"manager_id,omitempty"`
	ManagerName    string  `json:"manager_name,omitempty"`
	Active         bool    `json:"active"`
}

package employee

type CreateEmployeeRequest struct {
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          *string `json:"phone"`
	DepartmentID   string  `json:"department_id" binding:"required,uuid"`
	BaseSalary     string  `json:"base_salary" binding:"required"`
	HireDate       string  `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName         string  `json:"full_name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Phone            *string `json:"phone"`
	DepartmentID     string  `json:"department_id" binding:"required,uuid"`
	EmploymentStatus string  `json:"employment_status" binding:"required,oneof=ACTIVE INACTIVE TERMINATED"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	EmployeeNumber   string  `json:"employee_number"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone,omitempty"`
	DepartmentID     string  `json:"department_id,omitempty"`
	DepartmentName   string  `json:"department_name,omitempty"`
	BaseSalary       string  `json:"base_salary"`
	EmploymentStatus string  `json:"employment_status"`
	HireDate         string  `json:"hire_date"`
}

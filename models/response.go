package models

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Staff created"`
	ID      string `json:"id,omitempty" example:"507f1f77bcf86cd799439011"`
}

type LoginSuccessResponse struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	UserID  string `json:"user_id" example:"507f1f77bcf86cd799439011"`
	Role    string `json:"role" example:"staff"`
}

type SalaryViewResponse struct {
	Salary  float64 `json:"salary" example:"1200"`
	StaffID string  `json:"staff_id" example:"STF-0001"`
}

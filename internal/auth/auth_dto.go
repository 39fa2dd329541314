package auth

import "time"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin employee"`
}

type SetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type UserResponse struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	EmployeeID string `json:"emp_id,omitempty"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

func toUserResponse(cred *Credential) UserResponse {
	resp := UserResponse{Username: cred.Username, Role: cred.Role}
	if cred.EmployeeID != nil {
		resp.EmployeeID = *cred.EmployeeID
	}
	return resp
}

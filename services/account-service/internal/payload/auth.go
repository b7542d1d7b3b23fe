package payload

import "github.com/vasapolrittideah/school-site-api/services/account-service/internal/model"

type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	DisplayName    string `json:"displayName"`
	EnrollmentCode string `json:"enrollmentCode"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateDisplayNameRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=64"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

type SetBannedRequest struct {
	Banned *bool `json:"banned" validate:"required"`
}

// Response is the envelope of every JSON response.
type Response struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Error   string               `json:"error,omitempty"`
	User    *model.UserProfile   `json:"user,omitempty"`
	Users   []*model.UserProfile `json:"users,omitempty"`
	IDToken string               `json:"idToken,omitempty"`
}

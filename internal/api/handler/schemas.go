package handler

import "github.com/fundbridge/platform/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type retrieveRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetRequest struct {
	Token    string `json:"token"    validate:"required,uuid"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// --- Users ---

type completeRegistrationRequest struct {
	Name       string `json:"name"       validate:"required,max=120"`
	NationalID string `json:"nationalId" validate:"required,max=32"`
	Phone      string `json:"phone"      validate:"omitempty,max=32"`
}

type updateProfileRequest struct {
	Name      *string `json:"name"      validate:"omitempty,min=1,max=120"`
	Phone     *string `json:"phone"     validate:"omitempty,max=32"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}

type userResponse struct {
	*domain.User
	IsFullRegistered bool `json:"isFullRegistered"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{User: u, IsFullRegistered: u.IsFullyRegistered()}
}

type listUsersQuery struct {
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
	Role  string `query:"role"`
}

type userListResponse struct {
	Items      []*domain.User `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin mentor normal"`
}

// --- Projects ---

type listProjectsQuery struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Category string `query:"category"`
	Search   string `query:"search"`
}

type projectListResponse struct {
	Items      []*domain.Project `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

// createProjectForm is the multipart form of POST /api/projects; the image
// travels as the "image" file part.
type createProjectForm struct {
	Title       string `form:"title"       validate:"required,max=160"`
	Description string `form:"description" validate:"required"`
	CategoryID  string `form:"categoryId"  validate:"required"`
	Goal        int64  `form:"goal"        validate:"required,gt=0"`
}

// --- Investments ---

type investRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type investResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

type webhookResponse struct {
	Received bool   `json:"received"`
	Queued   bool   `json:"queued"`
	Type     string `json:"type"`
}

// --- Catalog ---

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

type createMentorForm struct {
	UserID    string `form:"userId"    validate:"omitempty,uuid"`
	Name      string `form:"name"      validate:"required,max=120"`
	Expertise string `form:"expertise" validate:"required,max=120"`
	Bio       string `form:"bio"       validate:"omitempty,max=2000"`
}

type createResourceForm struct {
	Title       string `form:"title"       validate:"required,max=160"`
	Description string `form:"description" validate:"omitempty,max=2000"`
}

type testimonialRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
}

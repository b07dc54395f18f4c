package model

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	DueDate     *string  `json:"dueDate"`
	Priority    string   `json:"priority"`
	CategoryID  string   `json:"categoryId"`
	TagIDs      []string `json:"tagIds"`
}

type UpdateTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	DueDate     *string  `json:"dueDate"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	CategoryID  string   `json:"categoryId"`
	TagIDs      []string `json:"tagIds"`
}

// TaskFilter is the parsed query string of GET /tasks. Zero values
// mean "no constraint".
type TaskFilter struct {
	Status     string
	Priority   string
	CategoryID string
	TagNames   []string
	Search     string
	FromDate   *string
	ToDate     *string
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

type InviteRequest struct {
	Emails []string `json:"emails" binding:"required"`
	Role   string   `json:"role"`
}

type ChangeRoleRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

type RemoveCollaboratorRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type PersonalizeRequest struct {
	TagIDs     []string `json:"tagIds"`
	CategoryID string   `json:"categoryId"`
}

type TagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type CategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

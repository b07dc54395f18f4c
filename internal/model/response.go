package model

// ResponseAPI is the envelope every endpoint returns.
type ResponseAPI struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// TaskListResponse extends the envelope with pagination metadata for
// GET /tasks.
type TaskListResponse struct {
	Success    bool   `json:"success"`
	Data       []Task `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
}

// TaskPage is what the filter engine hands back to the handler.
type TaskPage struct {
	Items      []Task
	Total      int64
	Page       int
	TotalPages int
}

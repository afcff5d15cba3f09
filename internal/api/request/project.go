package request

// CreateProject holds the request body for creating a project.
type CreateProject struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Slug        string `json:"slug" validate:"required,slug"`
	Description string `json:"description" validate:"max=4096"`
}

// UpdateProject holds the request body for updating a project.
type UpdateProject struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=4096"`
}

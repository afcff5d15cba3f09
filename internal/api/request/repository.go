package request

// CreateRepository holds the request body for attaching a repository to a
// project.
type CreateRepository struct {
	Name          string `json:"name" validate:"required,min=1,max=255"`
	URL           string `json:"url" validate:"required,url"`
	DefaultBranch string `json:"default_branch" validate:"omitempty,min=1,max=255"`
}

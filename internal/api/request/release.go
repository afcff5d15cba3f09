package request

// CreateRelease holds the request body for cutting a release.
type CreateRelease struct {
	Version string `json:"version" validate:"required,min=1,max=64"`
	Notes   string `json:"notes" validate:"max=16384"`
}

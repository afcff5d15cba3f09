package request

// CreateUser holds the request body for registering a user.
type CreateUser struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=10,max=128"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=255"`
}

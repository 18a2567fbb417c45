package dto

type CreateUserRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateUserResponse struct {
	Name   string `json:"name"`
	UserId string `json:"userId"`
}

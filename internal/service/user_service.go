package service

import (
	"context"

	"ai-bookrec-be/internal/dto"
	"ai-bookrec-be/internal/repository/memory"
)

type IUserService interface {
	CreateUser(ctx context.Context, request *dto.CreateUserRequest) (*dto.CreateUserResponse, error)
}

type userService struct {
	userRepo *memory.UserRepository
}

func NewUserService(userRepo *memory.UserRepository) IUserService {
	return &userService{userRepo: userRepo}
}

// CreateUser registers a display name and hands back a generated identifier
func (us *userService) CreateUser(ctx context.Context, request *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	userID := us.userRepo.Register(request.Name)
	return &dto.CreateUserResponse{
		Name:   request.Name,
		UserId: userID,
	}, nil
}

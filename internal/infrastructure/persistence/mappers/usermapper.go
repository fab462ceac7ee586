package mappers

import (
	"github.com/buildingai/cozepkg/internal/domain/user"
	"github.com/buildingai/cozepkg/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	ToEntity(model *models.UserModel) *user.User
	ToModel(entity *user.User) *models.UserModel
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) *user.User {
	if model == nil {
		return nil
	}
	return user.ReconstructUser(
		model.ID,
		model.Username,
		model.Nickname,
		model.Email,
		model.PasswordHash,
		model.IsRoot,
		user.Status(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:           entity.ID(),
		Username:     entity.Username(),
		Nickname:     entity.Nickname(),
		Email:        entity.Email(),
		PasswordHash: entity.PasswordHash(),
		IsRoot:       entity.IsRoot(),
		Status:       int(entity.Status()),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

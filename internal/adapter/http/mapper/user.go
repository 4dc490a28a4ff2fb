package mapper

import (
	"time"

	"github.com/gregsyu/task-manager/internal/adapter/http/dto"
	"github.com/gregsyu/task-manager/internal/core/domain"
)

// ToUserProfile never exposes the password hash.
func ToUserProfile(user domain.User) dto.UserProfile {
	profile := dto.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}

	if user.Email != nil {
		value := *user.Email
		profile.Email = &value
	}

	if user.FullName != nil {
		value := *user.FullName
		profile.FullName = &value
	}

	if user.UpdatedAt != nil {
		value := user.UpdatedAt.Format(time.RFC3339)
		profile.UpdatedAt = &value
	}

	return profile
}

package response

import (
	"strconv"

	"storefront/internal/data/entity"
)

type UserResponse struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     entity.Role `json:"role"`
}

func (u UserResponse) Header() []string { return []string{"ID", "USERNAME", "ROLE"} }

func (u UserResponse) Rows() [][]string {
	return [][]string{{strconv.FormatInt(u.ID, 10), u.Username, u.Role.String()}}
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

func IdentityToResponse(identity entity.Identity) UserResponse {
	return UserResponse{
		ID:       identity.ID,
		Username: identity.Username,
		Role:     identity.Role,
	}
}

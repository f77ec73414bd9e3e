package admin

import "github.com/dropDatabas3/dealerdesk/internal/domain/repository"

type UserCreateRequest struct {
	Email       string              `json:"email"`
	Password    string              `json:"password"`
	DisplayName string              `json:"displayName"`
	Roles       []string            `json:"roles"`
	Profile     *repository.Profile `json:"profile"`
}

type UserUpdateRequest struct {
	DisplayName *string             `json:"displayName"`
	Password    *string             `json:"password"`
	Roles       []string            `json:"roles"`
	Profile     *repository.Profile `json:"profile"`
}

type UserList struct {
	Items      []repository.User `json:"items"`
	NextCursor *string           `json:"nextCursor"`
}

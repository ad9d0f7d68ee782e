package dto

import "github.com/pocketcook/auth-service/internal/domain"

type MessageData struct {
	Message string `json:"message"`
}

type TokenData struct {
	Token string `json:"token"`
}

// UserView is the public projection of a user. It never carries the
// password hash.
type UserView struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
	}
}

type GoogleLoginData struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

type MeData struct {
	User UserView `json:"user"`
}

package handler

import "keybox/internal/domain"

// UserDTO is the JSON representation of a user's public fields. The
// password hash never leaves the service.
type UserDTO struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Age:      u.Age,
		Gender:   u.Gender,
	}
}

// EntryDTO is the JSON representation of a stored key/value pair.
type EntryDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func toEntryDTO(e *domain.Entry) EntryDTO {
	return EntryDTO{Key: e.Key, Value: e.Value}
}

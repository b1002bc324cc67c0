package dto

type UserMessageResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type ProfileMessageResponse struct {
	Message string          `json:"message"`
	Profile ProfileResponse `json:"profile"`
}

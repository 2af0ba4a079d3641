package models

type LoginRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type CreateBoardRequestBody struct {
	Title string `json:"title"`
}

type AddMemberRequestBody struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

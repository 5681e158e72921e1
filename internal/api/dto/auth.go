package dto

type RegisterReq struct {
	Email    string `json:"email" binding:"required,email,max=100"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginDTO struct {
	UserID   uint64 `json:"userId"`
	Nickname string `json:"nickname"`
	Token    string `json:"token"`
}

type NicknameCheckReq struct {
	Nickname string `json:"nickname" binding:"required,min=2,max=50"`
}

type EmailCheckReq struct {
	Email string `json:"email" binding:"required,email"`
}

type AvailabilityDTO struct {
	Available bool `json:"available"`
}

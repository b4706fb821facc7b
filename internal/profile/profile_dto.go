package profile

type UpdateProfileRequest struct {
	Name       string  `json:"name" binding:"required"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

type ProfileResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Role       string  `json:"role"`
	QRCode     string  `json:"qr_code"`
}

package domain

type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Pseudo    string `json:"pseudo"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// TokenPayload is the claims subset the gateway reads from the bearer
// token issued by the peloton API.
type TokenPayload struct {
	UserID int
	Email  string
	Pseudo string
}

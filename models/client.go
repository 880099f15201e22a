package models

type Client struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Session is the explicit identity object passed around instead of ambient
// browser-local state. Role is either "client" or "admin".
type Session struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
}

package models

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Public retourne la projection "session" de l'utilisateur, sans mot de passe.
func (u User) Public() User {
	return User{Username: u.Username, Email: u.Email}
}

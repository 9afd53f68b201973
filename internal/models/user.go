package models

// User представляет аккаунт в локальном хранилище
type User struct {
	ID   string `json:"id"`    // UUID пользователя, не меняется
	Mail string `json:"email"` // e-mail, не уникален
	Name string `json:"name"`  // уникальный username
	Hash string `json:"hash"`  // hex SHA-512(password + salt)
	Salt string `json:"salt"`  // символы [a-zA-Z0-9], не меняется
}

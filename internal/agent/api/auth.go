// В этом файле описаны методы клиента для работы
// с эндпоинтами аутентификации: регистрация, вход, обновление токена,
// выход и получение информации о текущем пользователе.
package api

import "time"

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// RegisterResponse описывает ответ сервера при успешной регистрации.
//
// UserID содержит идентификатор созданного пользователя.
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginRequest описывает тело запроса входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse описывает ответ сервера при успешном входе.
//
// AccessToken используется для авторизации запросов к защищённым эндпоинтам.
// RefreshToken используется для обновления пары токенов через /auth/refresh.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest описывает тело запроса обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse описывает ответ сервера при успешном обновлении токенов.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MeResponse описывает ответ сервера с профилем текущего пользователя.
type MeResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Register выполняет регистрацию пользователя на сервере.
//
// Метод отправляет POST запрос на /auth/register и возвращает RegisterResponse.
// В случае ошибки возвращает непустую ошибку и пустой ответ.
func (c *Client) Register(email, password, displayName string) (RegisterResponse, error) {
	var resp RegisterResponse
	err := c.PostJSON("/auth/register", RegisterRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}, &resp, "")
	return resp, err
}

// Login выполняет вход пользователя и получает пару токенов.
//
// Метод отправляет POST запрос на /auth/login и возвращает LoginResponse
// с AccessToken и RefreshToken. В случае ошибки возвращает непустую ошибку
// и пустой ответ.
func (c *Client) Login(email, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.PostJSON("/auth/login", LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Refresh обновляет пару токенов по refresh токену.
func (c *Client) Refresh(refreshToken string) (RefreshResponse, error) {
	var resp RefreshResponse
	err := c.PostJSON("/auth/refresh", RefreshRequest{RefreshToken: refreshToken}, &resp, "")
	return resp, err
}

// Logout отзывает все refresh-сессии пользователя на сервере.
//
// Сервер отвечает 204 No Content.
func (c *Client) Logout(accessToken string) error {
	return c.PostJSON("/auth/logout", nil, nil, accessToken)
}

// Me запрашивает профиль текущего пользователя.
func (c *Client) Me(accessToken string) (MeResponse, error) {
	var resp MeResponse
	err := c.GetJSON("/me", &resp, accessToken)
	return resp, err
}

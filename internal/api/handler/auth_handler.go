package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/auth-service/internal/core/domain"
	"github.com/storefront/auth-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	CreatedUser  *domain.User `json:"createdUser"`
	EncodedToken string       `json:"encodedToken"`
}

type loginResponse struct {
	FoundUser    *domain.PublicUser `json:"foundUser"`
	EncodedToken string             `json:"encodedToken"`
}

// errorResponse is the failure envelope shared by every endpoint.
type errorResponse struct {
	Errors []string `json:"errors"`
}

func errorJSON(c echo.Context, status int, err error) error {
	return c.JSON(status, errorResponse{Errors: []string{err.Error()}})
}

// Signup creates a new account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Errors: []string{"invalid payload"}})
	}

	user, token, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidEmailFormat),
			errors.Is(err, domain.ErrWeakPassword),
			errors.Is(err, domain.ErrPasswordTooLong),
			errors.Is(err, domain.ErrMissingFirstName),
			errors.Is(err, domain.ErrEmailAlreadyExists):
			status = http.StatusUnprocessableEntity
		default:
			err = domain.ErrInternal
		}
		return errorJSON(c, status, err)
	}

	return c.JSON(http.StatusCreated, signupResponse{CreatedUser: user, EncodedToken: token})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Errors: []string{"invalid payload"}})
	}

	user, token, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidEmailFormat), errors.Is(err, domain.ErrMissingPassword):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrUnknownEmail):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrInvalidPassword):
			status = http.StatusUnauthorized
		default:
			err = domain.ErrInternal
		}
		return errorJSON(c, status, err)
	}

	return c.JSON(http.StatusOK, loginResponse{FoundUser: user, EncodedToken: token})
}

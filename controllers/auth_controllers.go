package controllers

import (
	"github.com/gin-gonic/gin"

	"parkeasy/dto"
	"parkeasy/errors"
	"parkeasy/response"
	"parkeasy/services"
	"parkeasy/validator"
)

const tokenExpiryMinutes = 60 * 24

// RegisterUser creates a new account and signs it in
func RegisterUser(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := validator.ValidateRegisterRequest(&req); err != nil {
		respondAppError(c, err)
		return
	}

	user, err := services.CreateUser(req)
	if err != nil {
		respondAppError(c, err)
		return
	}

	token, err := services.GenerateToken(services.UserInfo{UserID: user.ID, Role: user.Role}, tokenExpiryMinutes)
	if err != nil {
		response.ServerError(c)
		return
	}
	services.SetTokenCookies(c, token)
	response.Success(c, dto.LoginResponse{
		AccessToken: token,
		User:        services.ToUserResponse(user),
	})
}

// Login authenticates with username or email plus password
func Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := services.GetUserByIdentifier(req.Identifier)
	if err != nil {
		response.Unauthorized(c)
		return
	}
	if err := services.CheckPassword(user.Password, req.Password); err != nil {
		response.Unauthorized(c)
		return
	}

	token, err := services.GenerateToken(services.UserInfo{UserID: user.ID, Role: user.Role}, tokenExpiryMinutes)
	if err != nil {
		response.ServerError(c)
		return
	}
	services.SetTokenCookies(c, token)
	response.Success(c, dto.LoginResponse{
		AccessToken: token,
		User:        services.ToUserResponse(user),
	})
}

// Logout clears the token cookie
func Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	response.Success(c, nil)
}

// AuthGoogle signs in with a Google ID token, creating the account on first
// use
func AuthGoogle(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := services.AuthenticateGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		respondAppError(c, err)
		return
	}

	token, err := services.GenerateToken(services.UserInfo{UserID: user.ID, Role: user.Role}, tokenExpiryMinutes)
	if err != nil {
		response.ServerError(c)
		return
	}
	services.SetTokenCookies(c, token)
	response.Success(c, dto.LoginResponse{
		AccessToken: token,
		User:        services.ToUserResponse(user),
	})
}

// GetProfile returns the authenticated account
func GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")
	user, err := services.GetUserByID(userID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, services.ToUserResponse(user))
}

// SubmitVerification uploads an identity document and requests owner
// verification
func SubmitVerification(c *gin.Context) {
	userID := c.GetUint("userID")

	var req dto.VerificationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid verification details")
		return
	}
	if err := validator.ValidateVerificationRequest(&req); err != nil {
		respondAppError(c, err)
		return
	}

	file, err := c.FormFile("document")
	if err != nil {
		file = nil
	}

	if err := services.SubmitVerification(c.Request.Context(), userID, req, file); err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, nil)
}

// DecideVerification applies an admin's verification decision
func DecideVerification(c *gin.Context) {
	var req dto.VerificationDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := services.DecideVerification(req.UserID, req.Approve)
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, services.ToUserResponse(user))
}

// respondAppError maps an application error onto the response envelope
func respondAppError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeMissingToken:
		response.Unauthorized(c)
	case errors.ErrCodeUserNotFound, errors.ErrCodeDBNotFound,
		errors.ErrCodeInvalidListingID, errors.ErrCodeInvalidBookingID:
		response.NotFound(c)
	case errors.ErrCodeBookingConflict, errors.ErrCodeSlotUnavailable, errors.ErrCodeUserExists:
		response.Conflict(c, appErr.Message)
	case errors.ErrCodeDBError:
		response.ServerError(c)
	case errors.ErrCodeValidation, errors.ErrCodeRequiredField, errors.ErrCodeInvalidFormat:
		response.ValidationError(c, appErr.Message)
	default:
		response.BadRequest(c, appErr.Message)
	}
}

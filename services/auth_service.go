package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"parkeasy/config"
	"parkeasy/constants"
	"parkeasy/dto"
	"parkeasy/errors"
	"parkeasy/models"
	"parkeasy/services/notification"
	"parkeasy/utils"
)

// notifier pushes account events to admins. Defaults to a no-op so the
// package works without a websocket hub.
var notifier notification.Service = notification.NoopService{}

// SetNotifier installs the notification backend
func SetNotifier(n notification.Service) {
	notifier = n
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a stored hash
func CheckPassword(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}

// GetUserByIdentifier looks a user up by username or email
func GetUserByIdentifier(identifier string) (models.User, error) {
	var user models.User
	err := config.DB.Where("username = ? OR email = ?", identifier, identifier).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return user, errors.NewAppError(errors.ErrCodeUserNotFound, "Account not found", err)
	}
	return user, err
}

// CreateUser registers a new account with a hashed password
func CreateUser(req dto.RegisterRequest) (models.User, error) {
	var existing models.User
	err := config.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		return models.User{}, errors.NewAppError(errors.ErrCodeUserExists, "Username or email already in use", errors.ErrUserAlreadyExists)
	}
	if err != gorm.ErrRecordNotFound {
		return models.User{}, errors.NewAppError(errors.ErrCodeDBError, "Failed to check existing accounts", err)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return models.User{}, errors.NewAppError(errors.ErrCodeDBError, "Failed to hash password", err)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Role:     constants.RoleUser,
		Status:   constants.UserStatusActive,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return models.User{}, errors.NewAppError(errors.ErrCodeDBError, "Failed to create account", err)
	}
	return user, nil
}

// AuthenticateGoogle validates a Google ID token and returns the matching
// account, creating one on first sign-in.
func AuthenticateGoogle(ctx context.Context, rawIDToken string) (models.User, error) {
	payload, err := idtoken.Validate(ctx, rawIDToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		return models.User{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid Google token", err)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	if email == "" {
		return models.User{}, errors.NewAppError(errors.ErrCodeInvalidEmail, "Google token has no email", nil)
	}

	var user models.User
	err = config.DB.Where("email = ?", email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{
			Username: email,
			Email:    email,
			Avatar:   picture,
			Role:     constants.RoleUser,
			Status:   constants.UserStatusActive,
		}
		if name != "" {
			user.Username = name
		}
		if err := config.DB.Create(&user).Error; err != nil {
			return models.User{}, errors.NewAppError(errors.ErrCodeDBError, "Failed to create account", err)
		}
		return user, nil
	}
	if err != nil {
		return models.User{}, errors.NewAppError(errors.ErrCodeDBError, "Failed to look up account", err)
	}
	return user, nil
}

// SubmitVerification stores the user's identity details and document and
// marks the verification as pending admin review.
func SubmitVerification(ctx context.Context, userID uint, req dto.VerificationRequest, file *multipart.FileHeader) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeUserNotFound, "Account not found", err)
	}
	if user.IsVerified {
		return errors.NewAppError(errors.ErrCodeValidation, "Account is already verified", nil)
	}
	if user.VerificationStatus == constants.VerificationPending {
		return errors.NewAppError(errors.ErrCodeValidation, "Verification already requested", nil)
	}

	documentURL := ""
	if file != nil {
		src, err := file.Open()
		if err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidFormat, "Failed to read verification document", err)
		}
		defer src.Close()

		result, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{
			Folder: "verifications",
		})
		if err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to upload verification document", err)
		}
		documentURL = result.SecureURL
	}

	updates := map[string]interface{}{
		"age":                 req.Age,
		"address":             req.Address,
		"phone_number":        req.PhoneNumber,
		"verification_status": constants.VerificationPending,
	}
	if documentURL != "" {
		updates["verification_file"] = documentURL
	}
	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to save verification request", err)
	}

	var admins []models.User
	if err := config.DB.Where("role = ?", constants.RoleAdmin).Find(&admins).Error; err != nil {
		utils.LogError("load admins for verification alert failed: %v", err)
		return nil
	}
	NotifyAdminsOfVerification(admins, user, notifier)
	return nil
}

// NotifyAdminsOfVerification alerts every admin that an account is waiting
// for verification review. Delivery failures are logged, not surfaced; the
// request itself already succeeded.
func NotifyAdminsOfVerification(admins []models.User, applicant models.User, n notification.Service) {
	message := fmt.Sprintf("%s requested account verification", applicant.Username)
	link := fmt.Sprintf("/admin/verifications/%d", applicant.ID)
	for i := range admins {
		if err := n.Notify(admins[i].ID, message, link); err != nil {
			utils.LogError("verification alert to admin %d failed: %v", admins[i].ID, err)
		}
	}
}

// DecideVerification applies an admin's approve/reject decision.
func DecideVerification(userID uint, approve bool) (models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return user, errors.NewAppError(errors.ErrCodeUserNotFound, "Account not found", err)
	}
	if user.VerificationStatus != constants.VerificationPending {
		return user, errors.NewAppError(errors.ErrCodeValidation, "No pending verification for this account", nil)
	}

	updates := map[string]interface{}{}
	if approve {
		updates["is_verified"] = true
		updates["verification_status"] = constants.VerificationApproved
	} else {
		updates["verification_status"] = constants.VerificationNone
	}
	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		return user, errors.NewAppError(errors.ErrCodeDBError, "Failed to update verification", err)
	}
	user.IsVerified = approve
	return user, nil
}

// ToUserResponse strips an account down to its public shape
func ToUserResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		Avatar:             user.Avatar,
		Role:               user.Role,
		IsVerified:         user.IsVerified,
		VerificationStatus: user.VerificationStatus,
	}
}

package services

import (
	"time"

	"boardSync/configs"
	"boardSync/internal/errs"
	"boardSync/internal/models"
	"boardSync/internal/utils"
	"boardSync/internal/validators"

	"github.com/google/uuid"
)

type AuthenticationService struct {
	authRepo AuthenticationRepository
	config   *configs.Config
}

func NewAuthenticationService(
	authRepo AuthenticationRepository,
	config *configs.Config,
) *AuthenticationService {
	return &AuthenticationService{
		authRepo: authRepo,
		config:   config,
	}
}

func (as *AuthenticationService) Register(user *models.User) (*models.User, []error) {
	var errors []error
	if as.authRepo.CheckIfUserExists(user.Email) {
		errors = append(errors, errs.ErrUserAlreadyExists)
		return nil, errors
	}
	validationErrs := validators.ValidateUser(user)
	if len(validationErrs) > 0 {
		errors = append(errors, validationErrs...)
		return nil, errors
	}
	password, err := utils.HashPassword(user.Password)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	user.PasswordHash = password
	user.Password = ""
	created, err := as.authRepo.CreateUser(user)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	return created, nil
}

func (as *AuthenticationService) Login(loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	var errors []error

	user, err := as.authRepo.GetUserByEmail(loginData.Email)
	if err != nil {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	if err := utils.CompareHashAndPassword(user.PasswordHash, loginData.Password); err != nil {
		errors = append(errors, errs.ErrWrongPassword)
		return nil, errors
	}

	expiration := time.Now().Add(time.Duration(as.config.Viper.GetInt("jwt.expiration_time")) * time.Second)
	token, jwtErr := utils.CreateJwtToken(
		user.ID,
		user.Email,
		user.Name,
		as.config.JwtKey(),
		expiration,
	)
	if jwtErr != nil {
		errors = append(errors, jwtErr)
		return nil, errors
	}

	return &models.LoginResponse{
		User:  *user.ToUserResponse(),
		Token: token,
	}, nil
}

func (as *AuthenticationService) GetUserByID(id uuid.UUID) (*models.User, error) {
	return as.authRepo.GetUserByID(id)
}

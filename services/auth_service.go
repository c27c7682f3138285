package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
	"github.com/halilcengel/note.verse.backend/token"
)

// RegisterInput carries the fields accepted by user registration
type RegisterInput struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Name           string `json:"name" validate:"required"`
	TcNo           string `json:"tcNo" validate:"required"`
	Role           string `json:"role" validate:"required,oneof=admin teacher student"`
	StudentNumber  string `json:"studentNumber,omitempty"`
	EnrollmentYear int    `json:"enrollmentYear,omitempty"`
}

// AuthUser is the user payload returned by the auth endpoints. The
// role-specific identifiers are flattened into the user object; the full
// student and teacher records are never returned here.
type AuthUser struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Role          models.UserRole `json:"role"`
	TcNo          string          `json:"tcNo"`
	StudentID     string          `json:"studentId,omitempty"`
	StudentNumber string          `json:"studentNumber,omitempty"`
	TeacherID     string          `json:"teacherId,omitempty"`
}

// AuthResult bundles everything the login and verify endpoints return
type AuthResult struct {
	Token string   `json:"token,omitempty"`
	User  AuthUser `json:"user"`
}

func newAuthUser(user *models.User, student *models.Student, teacher *models.Teacher) AuthUser {
	au := AuthUser{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		TcNo:  user.TcNo,
	}
	if student != nil {
		au.StudentID = student.ID.String()
		au.StudentNumber = student.StudentNumber
	}
	if teacher != nil {
		au.TeacherID = teacher.ID.String()
	}
	return au
}

// AuthService handles credential checks, registration and token issuance
type AuthService struct {
	users    repositories.UserRepository
	students repositories.StudentRepository
	teachers repositories.TeacherRepository
	txMgr    repositories.TransactionManager
	tokens   *token.Manager
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService instance
func NewAuthService(
	users repositories.UserRepository,
	students repositories.StudentRepository,
	teachers repositories.TeacherRepository,
	txMgr repositories.TransactionManager,
	tokens *token.Manager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		students: students,
		teachers: teachers,
		txMgr:    txMgr,
		tokens:   tokens,
		logger:   logger,
	}
}

// Login verifies the email/password pair and issues a signed token.
// A missing user and a wrong password both surface as ErrInvalidCredentials
// so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, WrapInternal("look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	result, err := s.attachProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	signed, err := s.tokens.Issue(user, result.User.StudentID, result.User.TeacherID)
	if err != nil {
		return nil, WrapInternal("sign token", err)
	}
	result.Token = signed

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return result, nil
}

// Register creates a user account and, for student accounts, the student
// profile in the same transaction.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	role := models.UserRole(input.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if role == models.RoleStudent && (input.StudentNumber == "" || input.EnrollmentYear == 0) {
		return nil, NewDomainError(ErrorTypeValidation,
			"studentNumber and enrollmentYear are required for student accounts", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, WrapInternal("hash password", err)
	}

	user := models.NewUser(input.Email, string(hash), input.Name, input.TcNo, role)

	var student *models.Student
	err = WithTransaction(ctx, s.txMgr, func(ctx context.Context, tx repositories.Transaction) error {
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return ErrDuplicateEmail
			}
			return WrapInternal("create user", err)
		}

		if role == models.RoleStudent {
			student = models.NewStudent(input.StudentNumber, input.EnrollmentYear, user.ID)
			if err := s.students.Create(ctx, student); err != nil {
				if errors.Is(err, repositories.ErrDuplicate) {
					return ErrDuplicateRecord
				}
				return WrapInternal("create student profile", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	return &AuthResult{User: newAuthUser(user, student, nil)}, nil
}

// Verify resolves verified token claims back into the current account state
func (s *AuthService) Verify(ctx context.Context, claims *token.Claims) (*AuthResult, error) {
	userID, err := claims.UserUUID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, WrapInternal("look up user", err)
	}

	return s.attachProfile(ctx, user)
}

// attachProfile loads the role-specific profile record for a user and
// flattens its identifiers into the response payload. A missing profile is
// not an error; the account may predate the profile.
func (s *AuthService) attachProfile(ctx context.Context, user *models.User) (*AuthResult, error) {
	var student *models.Student
	var teacher *models.Teacher

	switch user.Role {
	case models.RoleStudent:
		found, err := s.students.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, WrapInternal("look up student profile", err)
		}
		student = found
	case models.RoleTeacher:
		found, err := s.teachers.GetByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, WrapInternal("look up teacher profile", err)
		}
		teacher = found
	}

	return &AuthResult{User: newAuthUser(user, student, teacher)}, nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/halilcengel/note.verse.backend/models"
	"github.com/halilcengel/note.verse.backend/repositories"
	"github.com/halilcengel/note.verse.backend/token"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, params repositories.ListParams) ([]*models.User, int, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]*models.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStudentRepository is a mock implementation of StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.Student), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.(*models.Student), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context, params repositories.ListParams) ([]*models.Student, int, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]*models.Student), args.Int(1), args.Error(2)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTeacherRepository is a mock implementation of TeacherRepository
type MockTeacherRepository struct {
	mock.Mock
}

func (m *MockTeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	args := m.Called(ctx, teacher)
	return args.Error(0)
}

func (m *MockTeacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	args := m.Called(ctx, id)
	if tc := args.Get(0); tc != nil {
		return tc.(*models.Teacher), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeacherRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Teacher, error) {
	args := m.Called(ctx, userID)
	if tc := args.Get(0); tc != nil {
		return tc.(*models.Teacher), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeacherRepository) List(ctx context.Context, params repositories.ListParams) ([]*models.Teacher, int, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]*models.Teacher), args.Int(1), args.Error(2)
}

func (m *MockTeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	args := m.Called(ctx, teacher)
	return args.Error(0)
}

func (m *MockTeacherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type authFixture struct {
	users    *MockUserRepository
	students *MockStudentRepository
	teachers *MockTeacherRepository
	txMgr    *MockTransactionManager
	tx       *MockTransaction
	service  *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	tokens, err := token.NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	f := &authFixture{
		users:    new(MockUserRepository),
		students: new(MockStudentRepository),
		teachers: new(MockTeacherRepository),
		txMgr:    new(MockTransactionManager),
		tx:       new(MockTransaction),
	}
	f.service = NewAuthService(f.users, f.students, f.teachers, f.txMgr, tokens, zap.NewNop())
	return f
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	user := models.NewUser("aylin@bakircay.edu.tr", hashPassword(t, "correct-horse"),
		"Aylin Demir", "12345678901", models.RoleStudent)
	student := models.NewStudent("2021123456", 2021, user.ID)

	f.users.On("GetByEmail", ctx, "aylin@bakircay.edu.tr").Return(user, nil)
	f.students.On("GetByUserID", ctx, user.ID).Return(student, nil)

	result, err := f.service.Login(ctx, "aylin@bakircay.edu.tr", "correct-horse")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, user.Email, result.User.Email)
	assert.Equal(t, student.ID.String(), result.User.StudentID)
	assert.Equal(t, student.StudentNumber, result.User.StudentNumber)
	assert.Empty(t, result.User.TeacherID)
	f.users.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	user := models.NewUser("aylin@bakircay.edu.tr", hashPassword(t, "correct-horse"),
		"Aylin Demir", "12345678901", models.RoleStudent)
	f.users.On("GetByEmail", ctx, "aylin@bakircay.edu.tr").Return(user, nil)

	result, err := f.service.Login(ctx, "aylin@bakircay.edu.tr", "wrong-password")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	f.users.On("GetByEmail", ctx, "ghost@bakircay.edu.tr").Return(nil, repositories.ErrNotFound)

	result, err := f.service.Login(ctx, "ghost@bakircay.edu.tr", "anything")

	assert.Nil(t, result)
	// Same error as a wrong password, so callers cannot probe for accounts
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", ErrInvalidCredentials.Message)
}

func TestLogin_TokenCarriesStudentID(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	user := models.NewUser("aylin@bakircay.edu.tr", hashPassword(t, "pw-123456"),
		"Aylin Demir", "12345678901", models.RoleStudent)
	student := models.NewStudent("2021123456", 2021, user.ID)

	f.users.On("GetByEmail", ctx, user.Email).Return(user, nil)
	f.students.On("GetByUserID", ctx, user.ID).Return(student, nil)

	result, err := f.service.Login(ctx, user.Email, "pw-123456")
	require.NoError(t, err)

	verifier, err := token.NewManager("test-secret", time.Hour)
	require.NoError(t, err)
	claims, err := verifier.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, student.ID.String(), claims.StudentID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestRegister_StudentCreatesProfileInTransaction(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	var createdUser *models.User
	var createdStudent *models.Student
	f.txMgr.On("Begin", ctx).Return(f.tx, nil)
	f.tx.On("Commit").Return(nil)
	f.users.On("Create", ctx, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { createdUser = args.Get(1).(*models.User) }).
		Return(nil)
	f.students.On("Create", ctx, mock.AnythingOfType("*models.Student")).
		Run(func(args mock.Arguments) { createdStudent = args.Get(1).(*models.Student) }).
		Return(nil)

	result, err := f.service.Register(ctx, RegisterInput{
		Email:          "yeni@bakircay.edu.tr",
		Password:       "secret123",
		Name:           "Yeni Ogrenci",
		TcNo:           "98765432109",
		Role:           "student",
		StudentNumber:  "2024100200",
		EnrollmentYear: 2024,
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, result.User.Role)
	assert.Equal(t, "2024100200", result.User.StudentNumber)
	require.NotNil(t, createdStudent)
	assert.Equal(t, createdStudent.ID.String(), result.User.StudentID)
	assert.Equal(t, result.User.ID, createdStudent.UserID)
	// The stored hash must verify against the original password
	require.NotNil(t, createdUser)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(createdUser.PasswordHash), []byte("secret123")))
	f.users.AssertExpectations(t)
	f.students.AssertExpectations(t)
	f.txMgr.AssertExpectations(t)
	f.tx.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	f.txMgr.On("Begin", ctx).Return(f.tx, nil)
	f.tx.On("Rollback").Return(nil)
	f.users.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicate)

	result, err := f.service.Register(ctx, RegisterInput{
		Email:    "taken@bakircay.edu.tr",
		Password: "secret123",
		Name:     "Mevcut Kisi",
		TcNo:     "11111111111",
		Role:     "admin",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.True(t, f.tx.rolledback)
}

func TestRegister_StudentRequiresNumberAndYear(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	result, err := f.service.Register(ctx, RegisterInput{
		Email:    "eksik@bakircay.edu.tr",
		Password: "secret123",
		Name:     "Eksik Kayit",
		TcNo:     "22222222222",
		Role:     "student",
	})

	assert.Nil(t, result)
	assert.True(t, IsValidationError(err))
}

func TestRegister_InvalidRole(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	result, err := f.service.Register(ctx, RegisterInput{
		Email:    "kim@bakircay.edu.tr",
		Password: "secret123",
		Name:     "Kim",
		TcNo:     "33333333333",
		Role:     "superuser",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestVerify_ResolvesAccountState(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	user := models.NewUser("hoca@bakircay.edu.tr", "hash", "Prof Hoca", "44444444444", models.RoleTeacher)
	teacher := models.NewTeacher("Prof. Dr.", "B-204", "+90 232 000 0000", uuid.New(), user.ID)

	f.users.On("GetByID", ctx, user.ID).Return(user, nil)
	f.teachers.On("GetByUserID", ctx, user.ID).Return(teacher, nil)

	claims := &token.Claims{UserID: user.ID.String(), Email: user.Email, Role: user.Role}
	result, err := f.service.Verify(ctx, claims)

	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, teacher.ID.String(), result.User.TeacherID)
	assert.Empty(t, result.User.StudentID)
	assert.Empty(t, result.Token)
}

func TestVerify_DeletedUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	id := uuid.New()
	f.users.On("GetByID", ctx, id).Return(nil, repositories.ErrNotFound)

	claims := &token.Claims{UserID: id.String(), Role: models.RoleStudent}
	result, err := f.service.Verify(ctx, claims)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halilcengel/note.verse.backend/models"
)

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager("", time.Hour)
	assert.Error(t, err)

	_, err = NewManager("secret", 0)
	assert.Error(t, err)

	mgr, err := NewManager("secret", time.Hour)
	require.NoError(t, err)
	assert.NotNil(t, mgr)
}

func TestIssueVerify_Roundtrip(t *testing.T) {
	mgr, err := NewManager("test-secret", 7*24*time.Hour)
	require.NoError(t, err)

	user := models.NewUser("defne@bakircay.edu.tr", "hash", "Defne Kaya", "12345678901", models.RoleStudent)
	signed, err := mgr.Issue(user, "student-123", "")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := mgr.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "defne@bakircay.edu.tr", claims.Email)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, "student-123", claims.StudentID)
	assert.Empty(t, claims.TeacherID)

	id, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestIssue_RoleSpecificIDs(t *testing.T) {
	mgr, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name          string
		role          models.UserRole
		wantStudentID string
		wantTeacherID string
	}{
		{"student keeps studentId", models.RoleStudent, "s-1", ""},
		{"teacher keeps teacherId", models.RoleTeacher, "", "t-1"},
		{"admin carries neither", models.RoleAdmin, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := models.NewUser("u@bakircay.edu.tr", "hash", "U", "1", tt.role)
			signed, err := mgr.Issue(user, "s-1", "t-1")
			require.NoError(t, err)

			claims, err := mgr.Verify(signed)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStudentID, claims.StudentID)
			assert.Equal(t, tt.wantTeacherID, claims.TeacherID)
		})
	}
}

func TestVerify_ExpiryBound(t *testing.T) {
	mgr, err := NewManager("test-secret", 7*24*time.Hour)
	require.NoError(t, err)

	user := models.NewUser("u@bakircay.edu.tr", "hash", "U", "1", models.RoleAdmin)
	signed, err := mgr.Issue(user, "", "")
	require.NoError(t, err)

	claims, err := mgr.Verify(signed)
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 7*24*time.Hour, lifetime)
}

func TestVerify_Expired(t *testing.T) {
	short, err := NewManager("test-secret", time.Nanosecond)
	require.NoError(t, err)

	user := models.NewUser("u@bakircay.edu.tr", "hash", "U", "1", models.RoleStudent)
	signed, err := short.Issue(user, "s-1", "")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = short.Verify(signed)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerify_UniformFailure(t *testing.T) {
	mgr, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	other, err := NewManager("other-secret", time.Hour)
	require.NoError(t, err)

	user := models.NewUser("u@bakircay.edu.tr", "hash", "U", "1", models.RoleStudent)
	valid, err := mgr.Issue(user, "s-1", "")
	require.NoError(t, err)

	foreignKey, err := other.Issue(user, "s-1", "")
	require.NoError(t, err)

	// Flip a character inside the payload segment
	tampered := []byte(valid)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	for name, tok := range map[string]string{
		"empty":           "",
		"garbage":         "not.a.token",
		"truncated":       valid[:strings.LastIndex(valid, ".")],
		"wrong secret":    foreignKey,
		"tampered":        string(tampered),
		"appended junk": valid + "x",
	} {
		_, err := mgr.Verify(tok)
		assert.ErrorIs(t, err, ErrUnauthenticated, name)
	}
}

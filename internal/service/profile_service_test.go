package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"microlend/internal/errors"
	"microlend/internal/model"
)

func TestProfileService_UploadPicture_RejectsBeforeAnyWrite(t *testing.T) {
	tests := []struct {
		name          string
		filename      string
		expectedError error
	}{
		{name: "empty filename", filename: "", expectedError: errors.ErrNoFile},
		{name: "executable", filename: "virus.exe", expectedError: errors.ErrInvalidFileType},
		{name: "no extension", filename: "photo", expectedError: errors.ErrInvalidFileType},
		{name: "pdf", filename: "statement.pdf", expectedError: errors.ErrInvalidFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			mockRepo := new(MockUserRepository)

			svc := NewProfileService(mockRepo, dir)
			_, err := svc.UploadPicture(context.Background(), 1, tt.filename, strings.NewReader("not an image"))

			assert.Equal(t, tt.expectedError, err)

			// No filesystem write and no user lookup or mutation happened.
			entries, readErr := os.ReadDir(dir)
			assert.NoError(t, readErr)
			assert.Empty(t, entries)
			mockRepo.AssertNotCalled(t, "FindByID")
			mockRepo.AssertNotCalled(t, "UpdateProfilePic")
		})
	}
}

func TestProfileService_UploadPicture_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()

	// Pre-existing custom picture that should be cleaned up.
	oldPic := "9_20240101000000_old.png"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, oldPic), []byte("old"), 0o644))

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(9)).Return(&model.User{ID: 9, Username: "alice", ProfilePic: oldPic}, nil)
	mockRepo.On("UpdateProfilePic", mock.Anything, uint(9), mock.AnythingOfType("string")).Return(nil)

	svc := NewProfileService(mockRepo, dir)
	stored, err := svc.UploadPicture(context.Background(), 9, "photo.PNG", strings.NewReader("image bytes"))

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "9_"))
	assert.True(t, strings.HasSuffix(stored, "_photo.PNG"))

	data, err := os.ReadFile(filepath.Join(dir, stored))
	assert.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))

	// The old picture is gone.
	_, err = os.Stat(filepath.Join(dir, oldPic))
	assert.True(t, os.IsNotExist(err))

	mockRepo.AssertExpectations(t)
}

func TestProfileService_UploadPicture_KeepsDefaultSentinelFile(t *testing.T) {
	dir := t.TempDir()

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, ProfilePic: model.DefaultProfilePic}, nil)
	mockRepo.On("UpdateProfilePic", mock.Anything, uint(2), mock.AnythingOfType("string")).Return(nil)

	svc := NewProfileService(mockRepo, dir)
	stored, err := svc.UploadPicture(context.Background(), 2, "avatar.gif", strings.NewReader("gif"))

	assert.NoError(t, err)
	entries, _ := os.ReadDir(dir)
	assert.Len(t, entries, 1)
	assert.Equal(t, stored, entries[0].Name())
	mockRepo.AssertExpectations(t)
}

func TestProfileService_UploadPicture_SwallowsMissingOldFile(t *testing.T) {
	dir := t.TempDir()

	// Record points at a file that no longer exists on disk; the delete
	// failure must not fail the upload.
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(4)).Return(&model.User{ID: 4, ProfilePic: "4_gone.jpg"}, nil)
	mockRepo.On("UpdateProfilePic", mock.Anything, uint(4), mock.AnythingOfType("string")).Return(nil)

	svc := NewProfileService(mockRepo, dir)
	_, err := svc.UploadPicture(context.Background(), 4, "new.jpeg", strings.NewReader("jpeg"))

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestProfileService_UploadPicture_FailedWriteLeavesNoOrphan(t *testing.T) {
	dir := t.TempDir()

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(6)).Return(&model.User{ID: 6, ProfilePic: model.DefaultProfilePic}, nil)

	svc := NewProfileService(mockRepo, dir)
	_, err := svc.UploadPicture(context.Background(), 6, "photo.png", failingReader{})

	assert.Error(t, err)

	// The half-written file was cleaned up and the record untouched.
	entries, readErr := os.ReadDir(dir)
	assert.NoError(t, readErr)
	assert.Empty(t, entries)
	mockRepo.AssertNotCalled(t, "UpdateProfilePic")
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"../../etc/passwd.png", "passwd.png"},
		{"my holiday pic.jpg", "my_holiday_pic.jpg"},
		{"we!rd$name.gif", "werdname.gif"},
		{"...", "upload"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), "input %q", tt.in)
	}
}

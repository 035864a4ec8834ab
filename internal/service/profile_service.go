package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"microlend/internal/errors"
	"microlend/internal/model"
	"microlend/internal/repository"
)

// allowedExtensions lists upload extensions accepted for profile pictures.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ProfileService handles user profile pictures.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (*model.User, error)
	UploadPicture(ctx context.Context, userID uint, filename string, src io.Reader) (string, error)
}

type profileService struct {
	userRepo  repository.UserRepository
	uploadDir string

	// userLocks serializes uploads per user so delete-old/write-new/persist
	// cannot interleave for the same account.
	mu        sync.Mutex
	userLocks map[uint]*sync.Mutex
}

// NewProfileService creates a profile service writing into uploadDir.
func NewProfileService(userRepo repository.UserRepository, uploadDir string) ProfileService {
	return &profileService{
		userRepo:  userRepo,
		uploadDir: uploadDir,
		userLocks: make(map[uint]*sync.Mutex),
	}
}

// Get returns the user row for profile display.
func (s *profileService) Get(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UploadPicture validates, stores and records a new profile picture,
// returning the stored filename. Validation failures happen before any
// filesystem or database mutation.
func (s *profileService) UploadPicture(ctx context.Context, userID uint, filename string, src io.Reader) (string, error) {
	if src == nil || filename == "" {
		return "", errors.ErrNoFile
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", errors.ErrInvalidFileType
	}

	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrUserNotFound
		}
		return "", err
	}

	stored := fmt.Sprintf("%d_%s_%s", userID, time.Now().Format("20060102150405"), sanitizeFilename(filename))
	path := filepath.Join(s.uploadDir, stored)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	// Best-effort cleanup of the previous picture; a leaked file is
	// preferable to a failed upload.
	if user.HasCustomPic() {
		if err := os.Remove(filepath.Join(s.uploadDir, user.ProfilePic)); err != nil {
			log.Printf("failed to delete old profile pic %s: %v", user.ProfilePic, err)
		}
	}

	if err := s.userRepo.UpdateProfilePic(ctx, userID, stored); err != nil {
		return "", fmt.Errorf("update profile pic: %w", err)
	}
	return stored, nil
}

func (s *profileService) lockFor(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// sanitizeFilename strips path components and collapses characters that are
// unsafe in a flat upload directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "upload"
	}
	return name
}

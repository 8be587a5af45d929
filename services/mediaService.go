package services

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/studyfocus/db"
	apiError "github.com/techagentng/studyfocus/errors"
	"github.com/techagentng/studyfocus/storage"
)

const (
	MaxProfileImageSize = 5 * 1024 * 1024 // 5 MB
	profileImageSide    = 256
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif"}

type MediaService interface {
	UpdateProfileImage(userID uint, file *multipart.FileHeader) (string, error)
}

type mediaService struct {
	profileRepo db.UserProfileRepository
	storage     storage.ObjectStorage
}

func NewMediaService(profileRepo db.UserProfileRepository, store storage.ObjectStorage) MediaService {
	return &mediaService{
		profileRepo: profileRepo,
		storage:     store,
	}
}

// UpdateProfileImage stores a square JPEG thumbnail of the upload and points the profile at it.
func (m *mediaService) UpdateProfileImage(userID uint, fileHeader *multipart.FileHeader) (string, error) {
	if m.storage == nil {
		return "", apiError.New("image storage is not configured", http.StatusServiceUnavailable)
	}
	if fileHeader.Size > MaxProfileImageSize {
		return "", apiError.New(fmt.Sprintf("file size exceeds limit of %d bytes", MaxProfileImageSize), http.StatusBadRequest)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, MaxProfileImageSize+1))
	if err != nil {
		return "", errors.Wrap(err, "read upload")
	}
	if len(raw) > MaxProfileImageSize {
		return "", apiError.New(fmt.Sprintf("file size exceeds limit of %d bytes", MaxProfileImageSize), http.StatusBadRequest)
	}

	thumbnail, err := profileThumbnail(raw)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("profiles/%d/%s.jpg", userID, uuid.NewString())
	url, err := m.storage.PutObject(key, "image/jpeg", thumbnail)
	if err != nil {
		return "", err
	}

	if err := m.profileRepo.UpdateProfileImage(userID, url); err != nil {
		return "", notFoundAs(err, apiError.ErrNotFound)
	}
	return url, nil
}

func profileThumbnail(raw []byte) ([]byte, error) {
	mtype := mimetype.Detect(raw)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, apiError.New(fmt.Sprintf("invalid file type: %s", mtype.String()), http.StatusBadRequest)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, apiError.New("failed to decode image", http.StatusBadRequest)
	}

	thumb := imaging.Fill(img, profileImageSide, profileImageSide, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, errors.Wrap(err, "encode thumbnail")
	}
	return buf.Bytes(), nil
}

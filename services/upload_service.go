package services

import (
	"context"
	"mime/multipart"

	apperrors "hotelhub/errors"
	"hotelhub/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	uploadFolder   = "hotelhub/hotels"
	maxUploadFiles = 10
)

// ImageStore stores one image and returns its public URL.
type ImageStore interface {
	Upload(ctx context.Context, file multipart.File, folder string) (string, error)
}

type cloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore returns nil when cld is nil, which disables uploads.
func NewCloudinaryStore(cld *cloudinary.Cloudinary) ImageStore {
	if cld == nil {
		return nil
	}
	return &cloudinaryStore{cld: cld}
}

func (s *cloudinaryStore) Upload(ctx context.Context, file multipart.File, folder string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

type UploadService struct {
	store  ImageStore
	logger logger.Logger
}

func NewUploadService(store ImageStore, log logger.Logger) *UploadService {
	return &UploadService{store: store, logger: log}
}

// UploadImages stores hotel and room images and returns their URLs in order.
func (s *UploadService) UploadImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if s.store == nil {
		return nil, apperrors.Upstream("이미지 저장소가 설정되지 않았습니다", nil)
	}
	if len(files) == 0 {
		return nil, apperrors.Validation("업로드할 파일이 없습니다")
	}
	if len(files) > maxUploadFiles {
		return nil, apperrors.Validation("한 번에 최대 10개의 파일만 업로드할 수 있습니다")
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := s.uploadOne(ctx, fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *UploadService) uploadOne(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", apperrors.Validation("파일을 열 수 없습니다")
	}
	defer src.Close()

	url, err := s.store.Upload(ctx, src, uploadFolder)
	if err != nil {
		s.logger.Error("upload %s: %v", fh.Filename, err)
		return "", apperrors.Upstream("이미지 업로드에 실패했습니다", err)
	}
	return url, nil
}

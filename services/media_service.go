package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	fig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/clemauthority/socialnet/config"
)

// MediaService stores uploaded message attachments and profile pictures and
// returns the public URLs persisted on the owning rows.
type MediaService interface {
	UploadImageFile(fileHeader *multipart.FileHeader, folder string) (string, error)
	UploadVideoFile(fileHeader *multipart.FileHeader, folder string) (string, error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

const MaxMediaFileSize = 32 * 1024 * 1024 // 32 MB

var supportedImageTypes = map[string]bool{
	".png":  true,
	".jpeg": true,
	".jpg":  true,
}

var supportedVideoTypes = map[string]bool{
	".mp4": true,
	".mov": true,
}

func generateUniqueFilename(extension string) string {
	timestamp := time.Now().UnixNano()
	randomUUID := uuid.New()
	return fmt.Sprintf("%d_%s%s", timestamp, randomUUID, extension)
}

func createS3Client(conf *config.Config) (*s3.Client, error) {
	cfg, err := fig.LoadDefaultConfig(context.Background(),
		fig.WithRegion(conf.AwsRegion),
		fig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// UploadImageFile renders a feed-sized copy plus a thumbnail and uploads
// both; the feed URL is what callers persist.
func (m *mediaService) UploadImageFile(fileHeader *multipart.FileHeader, folder string) (string, error) {
	if fileHeader.Size > MaxMediaFileSize {
		return "", errors.New("file size exceeds the maximum allowed size")
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !supportedImageTypes[ext] {
		return "", fmt.Errorf("unsupported image type: %s", fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "could not open uploaded file")
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}

	feedImg := imaging.Fill(img, 1080, 1080, imaging.Center, imaging.Lanczos)
	thumbnailImg := resize.Resize(200, 0, img, resize.Lanczos3)

	client, err := createS3Client(m.Config)
	if err != nil {
		return "", err
	}

	feedKey := filepath.Join(folder, generateUniqueFilename(".jpg"))
	thumbnailKey := filepath.Join(folder, "thumbnail", generateUniqueFilename(".jpg"))

	feedURL, err := m.putJPEG(client, feedImg, feedKey)
	if err != nil {
		return "", err
	}
	if _, err := m.putJPEG(client, thumbnailImg, thumbnailKey); err != nil {
		return "", err
	}
	return feedURL, nil
}

func (m *mediaService) UploadVideoFile(fileHeader *multipart.FileHeader, folder string) (string, error) {
	if fileHeader.Size > MaxMediaFileSize {
		return "", errors.New("file size exceeds the maximum allowed size")
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !supportedVideoTypes[ext] {
		return "", fmt.Errorf("unsupported video type: %s", fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "could not open uploaded file")
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(file); err != nil {
		return "", errors.Wrap(err, "could not read uploaded file")
	}

	client, err := createS3Client(m.Config)
	if err != nil {
		return "", err
	}
	key := filepath.Join(folder, generateUniqueFilename(ext))
	return m.putObject(client, buf.Bytes(), key, "video/mp4")
}

func (m *mediaService) putJPEG(client *s3.Client, img image.Image, key string) (string, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, nil); err != nil {
		return "", fmt.Errorf("failed to encode image: %v", err)
	}
	return m.putObject(client, buf.Bytes(), key, "image/jpeg")
}

func (m *mediaService) putObject(client *s3.Client, body []byte, key, contentType string) (string, error) {
	bucketName := m.Config.AwsBucket
	_, err := client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucketName, key), nil
}

package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"solireserve/config"
	"solireserve/infras/otel"
	"solireserve/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"

	defaultRegion         = "auto"
	defaultPresignMinutes = 15
)

type S3 interface {
	// UploadFile stores a multipart upload publicly and returns its URL.
	UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error)
	// UploadAttachment stores generated bytes as a download (Content-Disposition: attachment).
	UploadAttachment(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (err error)
	// PresignGetURL returns a time limited download link for a private object.
	PresignGetURL(ctx context.Context, bucketName, directory, fileName string) (url string, expiresAt time.Time, err error)
	DeleteFile(ctx context.Context, bucketName, directory, objectName string) error
	// ObjectNameFromURL returns the file name of a URL produced by UploadFile for directory,
	// or an empty string when the URL points elsewhere.
	ObjectNameFromURL(directory, url string) (objectName string)
}

type s3Impl struct {
	Client  *s3.Client
	Presign *s3.PresignClient
	Config  *config.Config
	otel    otel.Otel
}

func (svc *s3Impl) bucket(name string) string {
	if name == "" {
		return svc.Config.External.S3.BucketName
	}

	return name
}

func (svc *s3Impl) UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucketName = svc.bucket(bucketName)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: fileName,
		otelAttrBucket:   bucketName,
	})

	data, err := io.ReadAll(file)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	objectKey := path.Join(directory, fileName)

	err = svc.put(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(objectKey),
		ContentType: aws.String(fileHeader.Header.Get(constant.RequestHeaderContentType)),
	}, data)
	if err != nil {
		return constant.Empty, err
	}

	return svc.publicURL(objectKey), nil
}

func (svc *s3Impl) UploadAttachment(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadAttachment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucketName = svc.bucket(bucketName)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: fileName,
		otelAttrBucket:   bucketName,
	})

	return svc.put(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(bucketName),
		Key:                aws.String(path.Join(directory, fileName)),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", fileName)),
	}, fileData)
}

func (svc *s3Impl) PresignGetURL(ctx context.Context, bucketName, directory, fileName string) (url string, expiresAt time.Time, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PresignGetURL")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	minutes := svc.Config.External.S3.PresignMinutes
	if minutes <= 0 {
		minutes = defaultPresignMinutes
	}

	ttl := time.Duration(minutes) * time.Minute

	req, err := svc.Presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(svc.bucket(bucketName)),
		Key:    aws.String(path.Join(directory, fileName)),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("failed to presign S3 object")

		return constant.Empty, time.Time{}, fmt.Errorf("failed to presign S3 object: %w", err)
	}

	return req.URL, time.Now().Add(ttl), nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, bucketName, directory, objectName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucketName = svc.bucket(bucketName)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectName,
		otelAttrBucket:   bucketName,
	})

	_, err = svc.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(path.Join(directory, objectName)),
	})
	if err != nil {
		log.Error().Err(err).Str("file", objectName).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (svc *s3Impl) ObjectNameFromURL(directory, url string) string {
	return objectNameFromURL(svc.Config.External.S3.PublicDomain, directory, url)
}

func objectNameFromURL(publicDomain, directory, url string) string {
	prefix := strings.TrimRight(publicDomain, "/") + "/" + strings.Trim(directory, "/") + "/"

	name, ok := strings.CutPrefix(url, prefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return constant.Empty
	}

	return name
}

func (svc *s3Impl) publicURL(objectKey string) string {
	return strings.TrimRight(svc.Config.External.S3.PublicDomain, "/") + "/" + objectKey
}

func (svc *s3Impl) put(ctx context.Context, input *s3.PutObjectInput, data []byte) error {
	reader := bytes.NewReader(data)

	input.Body = reader
	input.ContentLength = aws.Int64(reader.Size())

	if _, err := svc.Client.PutObject(ctx, input); err != nil {
		log.Error().Err(err).Str("key", aws.ToString(input.Key)).Msg("failed to upload file to S3")

		return fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return nil
}

func New(config *config.Config, otel otel.Otel) S3 {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	region := config.External.S3.Region
	if region == "" {
		region = defaultRegion
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(config.External.S3.APIEndpoint)
		o.UsePathStyle = true
		o.Region = region
	})

	return &s3Impl{
		Client:  client,
		Presign: s3.NewPresignClient(client),
		Config:  config,
		otel:    otel,
	}
}

package initializers

import (
	"context"
	"smarthire-backend/config"
	filestorage "smarthire-backend/lib/file-storage"
	s3client "smarthire-backend/s3"

	log "github.com/sirupsen/logrus"
)

// InitS3 enables evidence storage when an S3 endpoint is configured.
func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 endpoint is not configured, evidence upload is disabled")
		return
	}
	minioClient, err := s3client.NewClient(config.Conf.S3.Endpoint, config.Conf.S3.AccessKeyID,
		config.Conf.S3.SecretAccessKey, *config.Conf.S3.UseSSL)
	if err != nil {
		log.WithError(err).Error("error creating S3 client")
		return
	}
	err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName, config.Conf.S3.Region)
	if err != nil {
		log.WithError(err).Error("S3 bucket check failed")
	}
	s3client.Client = minioClient
	filestorage.NewHandler(minioClient, config.Conf.S3.BucketName)
	log.Info("S3 client initialized")
}

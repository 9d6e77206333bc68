package s3client

import (
	"context"
	"facility-desk-backend/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

var Client *minio.Client

func Connect(ctx context.Context) error {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: config.Conf.S3.UseSSL != nil && *config.Conf.S3.UseSSL,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка создания клиента s3")
	}
	if err = makeBucket(ctx, minioClient, config.Conf.S3.BucketName); err != nil {
		return errors.Wrap(err, "ошибка создания бакета")
	}
	Client = minioClient
	return nil
}

func makeBucket(ctx context.Context, client *minio.Client, bucketName string) error {
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
}

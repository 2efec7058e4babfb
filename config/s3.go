package config

import (
	"os"
	"sync"
)

var (
	s3Once   sync.Once
	s3Config *S3Config
)

type S3Config struct {
	BucketName string
	Region     string
	Endpoint   string
	AccessKey  string
	SecretKey  string
}

func GetS3Config() *S3Config {
	s3Once.Do(func() {
		loadEnv()

		s3Config = &S3Config{
			BucketName: getenv("S3_BUCKET_NAME", "knowledge-nexus-documents"),
			Region:     getenv("S3_REGION", "eu-central-1"),
			Endpoint:   os.Getenv("S3_ENDPOINT"),
			AccessKey:  os.Getenv("S3_ACCESS_KEY"),
			SecretKey:  os.Getenv("S3_SECRET_KEY"),
		}
	})
	return s3Config
}

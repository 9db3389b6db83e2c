package s3client

import (
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	log "github.com/sirupsen/logrus"
)

// Init builds an S3 client from static credentials; used for the S3 config
// mode in prod deployments.
func Init(awsAccessKey, awsSecretKey string) *s3.S3 {
	if awsAccessKey == "" || awsSecretKey == "" {
		log.Fatal("AWS_ACCESS_KEY and AWS_SECRET_KEY must be set")
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(awsAccessKey, awsSecretKey, ""),
		Region:      aws.String("ap-southeast-1"),
	})
	if err != nil {
		log.Fatalf("fail to create aws session: %v", err)
	}

	return s3.New(sess)
}

// GetObject retrieves an object from S3.
func GetObject(s3Client *s3.S3, bucket, key string) ([]byte, error) {
	result, err := s3Client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer result.Body.Close()

	return io.ReadAll(result.Body)
}

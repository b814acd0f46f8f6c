package utils

import (
	"bytes"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3-compatible object storage for book cover images. Credentials come from
// the environment, bucket/region/endpoint from the yaml config.
type Storage struct {
	Bucket   string
	Region   string
	Endpoint string
}

func (st *Storage) client() *s3.S3 {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:   aws.String(st.Region),
		Endpoint: aws.String(st.Endpoint),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("STORAGE_ACCESS_KEY"), os.Getenv("STORAGE_SECRET_KEY"), "",
		),
	}))
	return s3.New(sess)
}

// UploadFile puts the file under folder/fileName and returns the public URL.
func (st *Storage) UploadFile(file []byte, fileName string, folder string, contentType string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	s3Client := st.client()

	_, err := s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(st.Bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s/%s", st.Endpoint, st.Bucket, filePath), nil
}

func (st *Storage) DeleteFile(filePath string) error {
	s3Client := st.client()

	_, err := s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(st.Bucket),
		Key:    aws.String(filePath),
	})
	if err != nil {
		return fmt.Errorf("unable to delete file from S3: %v", err)
	}
	return nil
}

package storage

import (
	"encodefaces/config"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const encodingsMimeType = "application/x-msgpack"

type S3Storage struct {
	Bucket  string
	session *session.Session
}

// NewS3Storage uses the default AWS credential chain (env, shared config, instance role)
func NewS3Storage(bucket string) (*S3Storage, error) {
	cfg := aws.NewConfig().WithRegion(config.S3_REGION)
	if config.S3_ENDPOINT != "" {
		cfg = cfg.WithEndpoint(config.S3_ENDPOINT).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return &S3Storage{
		Bucket:  bucket,
		session: sess,
	}, nil
}

func (s *S3Storage) GetFullPath(path string) string {
	return s3Scheme + s.Bucket + "/" + path
}

// Save uploads the content of reader, replacing any existing object
func (s *S3Storage) Save(path string, reader io.Reader) (int64, error) {
	counter := &countingReader{Reader: reader}
	uploader := s3manager.NewUploader(s.session)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(path),
		ContentType: aws.String(encodingsMimeType),
		Body:        counter,
	})
	return counter.n, err
}

func (s *S3Storage) Load(path string, writer io.Writer) (int64, error) {
	buf := aws.NewWriteAtBuffer([]byte{})
	downloader := s3manager.NewDownloader(s.session)
	_, err := downloader.Download(buf, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return 0, err
	}
	n, err := writer.Write(buf.Bytes())
	return int64(n), err
}

type countingReader struct {
	io.Reader
	n int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.n += int64(n)
	return n, err
}

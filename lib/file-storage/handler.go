// Package filestorage keeps surveillance and rejection evidence in S3.
package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const evidencePrefix = "evidence/"

var ErrBadReference = errors.New("invalid evidence reference")

type Provider interface {
	// UploadEvidence stores the file and returns the reference kept on the
	// candidate (reportUrl / rejection evidence).
	UploadEvidence(ctx context.Context, candidateID, fileName, contentType string, file io.Reader, fileSize int64) (ref string, err error)
	GetEvidence(ctx context.Context, ref string) (body []byte, contentType string, err error)
}

var Instance Provider

func NewHandler(s3client *minio.Client, bucketName string) {
	Instance = NewInstance(s3client, bucketName)
}

func NewInstance(s3client *minio.Client, bucketName string) Provider {
	return &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func (i impl) UploadEvidence(ctx context.Context, candidateID, fileName, contentType string, file io.Reader, fileSize int64) (string, error) {
	ref := EvidenceRef(candidateID, uuid.NewString(), fileName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, ref, file, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		log.WithError(err).
			WithField("candidate_id", candidateID).
			Error("error uploading evidence")
		return "", errors.Wrap(err, "error uploading evidence")
	}
	return ref, nil
}

func (i impl) GetEvidence(ctx context.Context, ref string) ([]byte, string, error) {
	if !IsEvidenceRef(ref) {
		return nil, "", ErrBadReference
	}
	object, err := i.s3client.GetObject(ctx, i.bucketName, ref, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", errors.Wrap(err, "error getting evidence")
	}
	defer object.Close()
	info, err := object.Stat()
	if err != nil {
		return nil, "", errors.Wrap(err, "error getting evidence info")
	}
	body, err := io.ReadAll(object)
	if err != nil {
		return nil, "", errors.Wrap(err, "error reading evidence")
	}
	return body, info.ContentType, nil
}

// EvidenceRef builds the object name "evidence/<candidate>/<file id>-<name>".
func EvidenceRef(candidateID, fileID, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' {
			return '_'
		}
		return r
	}, name)
	if name == "." || name == "" {
		name = "file"
	}
	return fmt.Sprintf("%s%s/%s-%s", evidencePrefix, candidateID, fileID, name)
}

func IsEvidenceRef(ref string) bool {
	if !strings.HasPrefix(ref, evidencePrefix) || strings.Contains(ref, "..") {
		return false
	}
	return len(strings.Split(ref, "/")) == 3
}

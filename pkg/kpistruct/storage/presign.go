package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// UploadURLExpiry is how long a pre-signed upload URL stays valid.
const UploadURLExpiry = 5 * time.Minute

// PresignAPI is the subset of the S3 presign client used by Presigner.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Upload is a pre-signed upload target.
type Upload struct {
	URL string `json:"uploadUrl"`
	Key string `json:"key"`
}

// Presigner issues pre-signed PUT URLs for workbook uploads.
type Presigner struct {
	api    PresignAPI
	bucket string
}

// NewPresigner creates a presigner for bucket.
func NewPresigner(api PresignAPI, bucket string) *Presigner {
	return &Presigner{api: api, bucket: bucket}
}

// UploadURL returns a private upload URL for key <ownerID>/<fileName>.
func (p *Presigner) UploadURL(ctx context.Context, ownerID, fileName, contentType string) (Upload, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Upload{}, errors.New("owner id is required")
	}
	if fileName == "" || contentType == "" {
		return Upload{}, errors.New("fileName and fileType are required")
	}
	if strings.Contains(fileName, "/") {
		return Upload{}, fmt.Errorf("file name %q must not contain '/'", fileName)
	}

	key := ownerID + "/" + fileName
	req, err := p.api.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	}, s3.WithPresignExpires(UploadURLExpiry))
	if err != nil {
		return Upload{}, fmt.Errorf("presign s3://%s/%s: %w", p.bucket, key, err)
	}

	return Upload{URL: req.URL, Key: key}, nil
}

package s3

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/geobuf/blobstore"
)

// UploadConfig tunes the multipart uploads behind Store.Create.
// Put always sends a single request.
type UploadConfig struct {
	// PartSize is the size of each uploaded part. Zero keeps the SDK default.
	PartSize int64
	// Concurrency is the number of parts in flight. Zero keeps the SDK default.
	Concurrency int
	// EnableChecksum asks S3 to verify every part with CRC32C.
	EnableChecksum bool
	// LeavePartsOnError keeps uploaded parts of a failed upload for inspection.
	LeavePartsOnError bool
}

// DefaultUploadConfig returns 8 MiB parts, four in flight, checksums on.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:       8 << 20,
		Concurrency:    4,
		EnableChecksum: true,
	}
}

func (c UploadConfig) uploader(client manager.UploadAPIClient) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		if c.PartSize > 0 {
			u.PartSize = c.PartSize
		}
		if c.Concurrency > 0 {
			u.Concurrency = c.Concurrency
		}
		u.LeavePartsOnError = c.LeavePartsOnError
	})
}

var crc32c = crc32.MakeTable(crc32.Castagnoli)

// checksumCRC32C is the big-endian CRC32C of data in base64, the form the
// x-amz-checksum-crc32c header carries.
func checksumCRC32C(data []byte) string {
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc32.Checksum(data, crc32c))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// putObject stores data in one request. S3 rejects the object if the body
// does not match the checksum.
func putObject(ctx context.Context, client Client, bucket, key string, data []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:         aws.String(bucket),
		Key:            aws.String(key),
		Body:           bytes.NewReader(data),
		ContentLength:  aws.Int64(int64(len(data))),
		ContentType:    aws.String(blobstore.ContentType(key)),
		ChecksumCRC32C: aws.String(checksumCRC32C(data)),
	})
	return err
}

// multipartBlob feeds writes through a pipe into a manager upload running
// in its own goroutine. The object exists once Close returns nil.
type multipartBlob struct {
	pw   *io.PipeWriter
	done chan error

	once sync.Once
	err  error
}

func startUpload(ctx context.Context, up *manager.Uploader, bucket, key string, checksum bool) *multipartBlob {
	pr, pw := io.Pipe()
	in := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        pr,
		ContentType: aws.String(blobstore.ContentType(key)),
	}
	if checksum {
		in.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
	}

	b := &multipartBlob{pw: pw, done: make(chan error, 1)}
	go func() {
		_, err := up.Upload(ctx, in)
		_ = pr.CloseWithError(err)
		b.done <- err
	}()
	return b
}

func (b *multipartBlob) Write(p []byte) (int, error) {
	return b.pw.Write(p)
}

// Sync does nothing; parts are flushed by the uploader as they fill.
func (b *multipartBlob) Sync() error { return nil }

// Close finishes the upload and waits for S3 to complete it.
func (b *multipartBlob) Close() error {
	b.once.Do(func() {
		_ = b.pw.Close()
		b.err = <-b.done
	})
	return b.err
}

// Abort cancels the upload. Parts already sent are removed by the uploader
// unless LeavePartsOnError is set.
func (b *multipartBlob) Abort() error {
	b.once.Do(func() {
		_ = b.pw.CloseWithError(context.Canceled)
		<-b.done
		b.err = context.Canceled
	})
	return nil
}

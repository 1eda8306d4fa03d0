// Package s3 stores geobuf datasets in an Amazon S3 bucket.
//
//	store, err := s3.New(ctx, "geodata",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//	if err != nil {
//	    return err
//	}
//	_, err = geobuf.Save(ctx, store, "parcels", ds)
//
// Manifests and column blobs are written with a single PutObject carrying a
// CRC32C checksum and a content type derived from the blob name. Streaming
// writes through Create go through the SDK multipart uploader, tuned with
// WithUploadConfig. Reads are ranged GETs and nothing is cached locally.
package s3

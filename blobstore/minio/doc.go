// Package minio stores datasets in MinIO and other S3-compatible object
// stores (Ceph, SeaweedFS, Garage) without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.New("localhost:9000", "geodata",
//	    minio.WithStaticCredentials("minioadmin", "minioadmin"),
//	    minio.WithPrefix("datasets/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := store.EnsureBucket(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	_, err = geobuf.Save(ctx, store, "cities", ds)
//
// Manifests are stored as application/json, column blobs as
// application/octet-stream.
package minio

package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geobuf/attribute"
	"github.com/hupe1980/geobuf/blobstore"
	"github.com/hupe1980/geobuf/dataset"
	"github.com/hupe1980/geobuf/geometry"
	"github.com/hupe1980/geobuf/persistence"
)

func TestStoreKeys(t *testing.T) {
	tests := []struct {
		root, name, key, list string
	}{
		{"", "polys/manifest.json", "polys/manifest.json", "polys/manifest.json"},
		{"datasets/", "polys/geometry.gbuf", "datasets/polys/geometry.gbuf", "datasets/polys/geometry.gbuf"},
		{"datasets", "polys/", "datasets/polys", "datasets/polys/"},
		{"datasets/", "", "datasets", "datasets/"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		s := NewStore(newBucket(), "b", tt.root)
		assert.Equal(t, tt.key, s.key(tt.name), "root=%q name=%q", tt.root, tt.name)
		assert.Equal(t, tt.list, s.listPrefix(tt.name), "root=%q name=%q", tt.root, tt.name)
	}
}

func TestStoreOpen(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3Client)
	store := NewStore(client, "geo", "datasets")

	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return aws.ToString(in.Key) == "datasets/polys/manifest.json"
	})).Return(nil, &types.NotFound{}).Once()
	client.On("HeadObject", mock.Anything, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return aws.ToString(in.Bucket) == "geo" && aws.ToString(in.Key) == "datasets/polys/geometry.gbuf"
	})).Return(&s3.HeadObjectOutput{ContentLength: aws.Int64(64)}, nil).Once()

	_, err := store.Open(ctx, "polys/manifest.json")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	blob, err := store.Open(ctx, "polys/geometry.gbuf")
	require.NoError(t, err)
	assert.Equal(t, int64(64), blob.Size())
	client.AssertExpectations(t)
}

func TestStorePut(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3Client)
	store := NewStore(client, "geo", "")

	manifest := []byte(`{"version":1}`)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Key) == "polys/manifest.json" &&
			aws.ToInt64(in.ContentLength) == int64(len(manifest)) &&
			aws.ToString(in.ContentType) == "application/json" &&
			aws.ToString(in.ChecksumCRC32C) == checksumCRC32C(manifest)
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, store.Put(ctx, "polys/manifest.json", manifest))
	client.AssertExpectations(t)
}

func TestStoreCreate(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3Client)
	store := NewStore(client, "geo", "")

	var body string
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Key) == "polys/attr-0000.gbuf" &&
			aws.ToString(in.ContentType) == "application/octet-stream" &&
			in.ChecksumAlgorithm == types.ChecksumAlgorithmCrc32c
	})).Run(func(args mock.Arguments) {
		data, _ := io.ReadAll(args.Get(1).(*s3.PutObjectInput).Body)
		body = string(data)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	wb, err := store.Create(ctx, "polys/attr-0000.gbuf")
	require.NoError(t, err)
	_, err = wb.Write([]byte("GBUF"))
	require.NoError(t, err)
	require.NoError(t, wb.Close())
	require.NoError(t, wb.Close())

	assert.Equal(t, "GBUF", body)
	client.AssertExpectations(t)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3Client)
	store := NewStore(client, "geo", "")

	client.On("DeleteObject", mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{}).Once()
	assert.NoError(t, store.Delete(ctx, "polys/manifest.json"))
}

func TestStoreListPages(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3Client)
	store := NewStore(client, "geo", "datasets/")

	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.Prefix) == "datasets/polys/" && in.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("next"),
		Contents:              []types.Object{{Key: aws.String("datasets/polys/manifest.json")}},
	}, nil).Once()
	client.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(in *s3.ListObjectsV2Input) bool {
		return aws.ToString(in.ContinuationToken) == "next"
	})).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("datasets/polys/geometry.gbuf")},
			{Key: aws.String("datasets/polys/attr-0000.gbuf")},
		},
	}, nil).Once()

	names, err := store.List(ctx, "polys/")
	require.NoError(t, err)
	assert.Equal(t, []string{"polys/attr-0000.gbuf", "polys/geometry.gbuf", "polys/manifest.json"}, names)
	client.AssertExpectations(t)
}

func TestObjectReads(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3Client)
	obj := &object{client: client, bucket: "geo", key: "polys/geometry.gbuf", size: 10}

	ranged := func(r string, body string) {
		client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return aws.ToString(in.Range) == r
		})).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil).Once()
	}

	t.Run("ReadAt", func(t *testing.T) {
		ranged("bytes=0-3", "GBUF")
		buf := make([]byte, 4)
		n, err := obj.ReadAt(ctx, buf, 0)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "GBUF", string(buf))
	})

	t.Run("ReadAtTail", func(t *testing.T) {
		ranged("bytes=8-9", "89")
		buf := make([]byte, 4)
		n, err := obj.ReadAt(ctx, buf, 8)
		assert.Equal(t, 2, n)
		assert.ErrorIs(t, err, io.EOF)

		_, err = obj.ReadAt(ctx, buf, 10)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("ReadRange", func(t *testing.T) {
		ranged("bytes=6-9", "6789")
		rc, err := obj.ReadRange(ctx, 6, 100)
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "6789", string(data))

		_, err = obj.ReadRange(ctx, 10, 1)
		assert.ErrorIs(t, err, io.EOF)
	})

	client.AssertExpectations(t)
}

func TestChecksumCRC32C(t *testing.T) {
	// Check value of CRC-32C for "123456789" is 0xE3069283.
	assert.Equal(t, "4waSgw==", checksumCRC32C([]byte("123456789")))
}

func TestDatasetRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := newBucket()
	store := NewStore(b, "geo", "datasets/")

	ds, err := dataset.New(geometry.ElementPolygons, []dataset.Row{
		dataset.RowFromArray([][2]float64{{1, 2}, {2, 0}, {3, 7}}, attribute.Document{"zone": attribute.String("a")}),
		dataset.RowFromArray([][2]float64{{3, 2}, {7, 5}, {6, 7}}, attribute.Document{"zone": attribute.String("b")}),
	})
	require.NoError(t, err)

	pm := persistence.NewManager(store, persistence.WithCompression(persistence.CompressionLZ4))
	m, err := pm.Save(ctx, "parcels", ds)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows)

	assert.Equal(t, "application/json", b.types["datasets/parcels/manifest.json"])
	assert.Equal(t, "application/octet-stream", b.types["datasets/parcels/geometry.gbuf"])

	got, err := pm.Load(ctx, "parcels")
	require.NoError(t, err)
	assert.True(t, ds.Equal(got))

	require.NoError(t, pm.Delete(ctx, "parcels"))
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = pm.Load(ctx, "parcels")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

package objectstore

import (
	"context"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/application"
	"github.com/oksasatya/auction-marketplace/pkg/helpers"
)

// GCS stores uploaded images in a Google Cloud Storage bucket.
type GCS struct {
	Client *storage.Client
	Bucket string
	Logger *logrus.Logger
}

func NewGCS(client *storage.Client, bucket string, logger *logrus.Logger) *GCS {
	return &GCS{Client: client, Bucket: bucket, Logger: logger}
}

var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// ObjectPath names an object under prefix with a random id, keeping the
// upload's extension when it has one.
func ObjectPath(prefix string, file application.Upload) string {
	ext := strings.ToLower(path.Ext(file.Filename))
	if ext == "" {
		ct := strings.ToLower(strings.TrimSpace(strings.SplitN(file.ContentType, ";", 2)[0]))
		ext = extByType[ct]
	}
	return path.Join(strings.Trim(prefix, "/"), uuid.NewString()+ext)
}

func (g *GCS) Upload(ctx context.Context, prefix string, file application.Upload) (string, error) {
	objectPath := ObjectPath(prefix, file)
	url, err := helpers.UploadObject(ctx, g.Client, g.Bucket, objectPath, file.ContentType, file.Reader)
	if err != nil {
		if g.Logger != nil {
			g.Logger.WithError(err).WithField("object", objectPath).Error("gcs upload failed")
		}
		return "", err
	}
	if g.Logger != nil {
		g.Logger.WithField("object", objectPath).Debug("gcs upload complete")
	}
	return url, nil
}

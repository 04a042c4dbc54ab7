package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"cyberlab-backend/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxAttachmentSize caps uploads at 32MB; lab attachments are pcaps, images
// and writeup archives, not disk images.
const MaxAttachmentSize = 32 * 1024 * 1024

// FileKind tags what an object in the bucket belongs to.
type FileKind string

const (
	FileKindAttachment FileKind = "attachment" // question/lab material uploaded by authors
	FileKindSubmission FileKind = "submission" // student file-upload answers
)

type FileInfo struct {
	ID           string    `json:"id" bson:"_id"`
	Filename     string    `json:"filename" bson:"filename"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size" bson:"length"`
	UploadDate   time.Time `json:"upload_date" bson:"uploadDate"`
	Kind         FileKind  `json:"kind"`
	UploadedBy   uint      `json:"uploaded_by"`
}

// AttachmentStore keeps binary lab material and submission files in GridFS.
type AttachmentStore interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, kind FileKind, uploadedBy uint) (*FileInfo, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, *FileInfo, error)
	Delete(ctx context.Context, fileID string) error
	GetFileInfo(ctx context.Context, fileID string) (*FileInfo, error)
}

type attachmentStore struct {
	db     *mongo.Database
	bucket *gridfs.Bucket
}

func NewAttachmentStore(db *mongo.Database) (AttachmentStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("lab_files"))
	if err != nil {
		return nil, fmt.Errorf("failed to create GridFS bucket: %w", err)
	}
	return &attachmentStore{db: db, bucket: bucket}, nil
}

func (s *attachmentStore) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, kind FileKind, uploadedBy uint) (*FileInfo, error) {
	if header.Size > MaxAttachmentSize {
		return nil, fmt.Errorf("%w: file exceeds %dMB limit", domain.ErrValidation, MaxAttachmentSize/(1024*1024))
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = detectContentType(header.Filename)
	}

	ext := filepath.Ext(header.Filename)
	storedName := uuid.NewString() + ext

	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{
		"original_name": header.Filename,
		"uploaded_by":   uploadedBy,
		"kind":          string(kind),
		"content_type":  contentType,
	})

	objectID, err := s.bucket.UploadFromStream(storedName, file, uploadOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	return &FileInfo{
		ID:           objectID.Hex(),
		Filename:     storedName,
		OriginalName: header.Filename,
		ContentType:  contentType,
		Size:         header.Size,
		UploadDate:   time.Now(),
		Kind:         kind,
		UploadedBy:   uploadedBy,
	}, nil
}

func (s *attachmentStore) Download(ctx context.Context, fileID string) (io.ReadCloser, *FileInfo, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid file ID", domain.ErrValidation)
	}

	info, err := s.GetFileInfo(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.bucket.OpenDownloadStream(objectID)
	if err != nil {
		return nil, nil, fmt.Errorf("file: %w", domain.ErrNotFound)
	}

	return stream, info, nil
}

func (s *attachmentStore) Delete(ctx context.Context, fileID string) error {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return fmt.Errorf("%w: invalid file ID", domain.ErrValidation)
	}
	if err := s.bucket.Delete(objectID); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *attachmentStore) GetFileInfo(ctx context.Context, fileID string) (*FileInfo, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid file ID", domain.ErrValidation)
	}

	var result struct {
		ID         primitive.ObjectID `bson:"_id"`
		Filename   string             `bson:"filename"`
		Length     int64              `bson:"length"`
		UploadDate time.Time          `bson:"uploadDate"`
		Metadata   bson.M             `bson:"metadata"`
	}

	err = s.db.Collection("lab_files.files").FindOne(ctx, bson.M{"_id": objectID}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("file: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	info := &FileInfo{
		ID:         result.ID.Hex(),
		Filename:   result.Filename,
		Size:       result.Length,
		UploadDate: result.UploadDate,
	}
	if result.Metadata != nil {
		if v, ok := result.Metadata["original_name"].(string); ok {
			info.OriginalName = v
		}
		if v, ok := result.Metadata["kind"].(string); ok {
			info.Kind = FileKind(v)
		}
		if v, ok := result.Metadata["content_type"].(string); ok {
			info.ContentType = v
		}
		switch v := result.Metadata["uploaded_by"].(type) {
		case int64:
			info.UploadedBy = uint(v)
		case int32:
			info.UploadedBy = uint(v)
		}
	}
	if info.ContentType == "" {
		info.ContentType = detectContentType(result.Filename)
	}
	return info, nil
}

func detectContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".pcap", ".pcapng":
		return "application/vnd.tcpdump.pcap"
	case ".zip":
		return "application/zip"
	case ".txt":
		return "text/plain"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

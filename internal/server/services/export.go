package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/cardkeep/cardkeep/internal/common"
	sc "github.com/cardkeep/cardkeep/internal/server/config"
	"github.com/cardkeep/cardkeep/internal/server/models"
	"github.com/cardkeep/cardkeep/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Seams for testing the S3 plumbing without a live endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ExportFormat selects the file format produced by ExportService.
type ExportFormat string

const (
	ExportFormatCSV   ExportFormat = "csv"
	ExportFormatVCard ExportFormat = "vcf"
)

// ExportService renders a user's cards to a file, uploads it to S3-compatible
// storage and hands back a short-lived presigned download URL.
type ExportService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewExportService(db *sql.DB, rm repomanager.RepositoryManager, config *sc.Config) *ExportService {
	return &ExportService{db: db, repomanager: rm, config: config}
}

func exportStorageKey(ownerID string, format ExportFormat) string {
	d := time.Now()
	return fmt.Sprintf("exports/%s/%d/%d/%d/%v.%s", ownerID, d.Year(), d.Month(), d.Day(), uuid.New(), format)
}

func (s *ExportService) getClients() (*s3.Client, *s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return client, newS3PresignClient(client), nil
}

// Export renders all cards of ownerID in the requested format, uploads the
// result and returns a presigned GET URL valid for 15 minutes.
func (s *ExportService) Export(ctx context.Context, ownerID string, format ExportFormat) (string, error) {
	var body []byte

	cards, err := s.repomanager.Cards(s.db).SelectByOwner(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("error selecting cards: %w", err)
	}

	switch format {
	case ExportFormatCSV:
		body, err = renderCSV(cards)
	case ExportFormatVCard:
		body, err = renderVCard(cards)
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", common.ErrValidation, format)
	}
	if err != nil {
		return "", fmt.Errorf("error rendering export: %w", err)
	}

	client, presignClient, err := s.getClients()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := exportStorageKey(ownerID, format)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("error presigning export: %w", err)
	}

	return req.URL, nil
}

func renderCSV(cards []*models.Card) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"name", "title", "company", "email", "phone", "website", "address", "notes", "category", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, c := range cards {
		record := []string{
			c.Name, c.Title, c.Company, c.Email, c.Phone,
			c.Website, c.Address, c.Notes, c.Category,
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func renderVCard(cards []*models.Card) ([]byte, error) {
	var buf bytes.Buffer
	for _, c := range cards {
		buf.WriteString("BEGIN:VCARD\r\nVERSION:3.0\r\n")
		fmt.Fprintf(&buf, "FN:%s\r\n", c.Name)
		if c.Company != "" {
			fmt.Fprintf(&buf, "ORG:%s\r\n", c.Company)
		}
		if c.Title != "" {
			fmt.Fprintf(&buf, "TITLE:%s\r\n", c.Title)
		}
		if c.Email != "" {
			fmt.Fprintf(&buf, "EMAIL:%s\r\n", c.Email)
		}
		if c.Phone != "" {
			fmt.Fprintf(&buf, "TEL:%s\r\n", c.Phone)
		}
		if c.Website != "" {
			fmt.Fprintf(&buf, "URL:%s\r\n", c.Website)
		}
		if c.Address != "" {
			fmt.Fprintf(&buf, "ADR:;;%s;;;;\r\n", c.Address)
		}
		if c.Notes != "" {
			fmt.Fprintf(&buf, "NOTE:%s\r\n", c.Notes)
		}
		buf.WriteString("END:VCARD\r\n")
	}
	return buf.Bytes(), nil
}

package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
)

// DefaultMaxObjectSize caps how much of the object is read.
const DefaultMaxObjectSize = 1 << 20 // 1 MB

// Client defines the S3 operations the source uses.
type Client interface {
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
}

// Config describes where the dotenv object lives.
type Config struct {
	Bucket      string `env:"BOOTSTRAP_S3_BUCKET"`
	Key         string `env:"BOOTSTRAP_S3_KEY"`
	Region      string `env:"BOOTSTRAP_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID string `env:"BOOTSTRAP_S3_ACCESS_KEY_ID"`
	SecretKey   string `env:"BOOTSTRAP_S3_SECRET_ACCESS_KEY"`
	// Endpoint is set for S3-compatible services like MinIO
	Endpoint string `env:"BOOTSTRAP_S3_ENDPOINT"`
	// ForcePathStyle is required for MinIO and some S3-compatible services
	ForcePathStyle bool `env:"BOOTSTRAP_S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// Enabled reports whether a bucket and key are configured.
func (c Config) Enabled() bool {
	return c.Bucket != "" && c.Key != ""
}

// Option configures a Source.
type Option func(*options)

type options struct {
	client        Client
	httpClient    *http.Client
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*s3aws.Options)
	maxObjectSize int64
}

// WithClient sets a pre-configured client. Primarily used for testing.
func WithClient(client Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithConfigOption adds a custom AWS config option.
func WithConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.configOptions = append(o.configOptions, option)
	}
}

// WithClientOption adds a custom S3 client option.
func WithClientOption(option func(*s3aws.Options)) Option {
	return func(o *options) {
		o.clientOptions = append(o.clientOptions, option)
	}
}

// WithMaxObjectSize overrides DefaultMaxObjectSize.
func WithMaxObjectSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxObjectSize = n
		}
	}
}

// Source reads a dotenv object from S3.
type Source struct {
	client  Client
	bucket  string
	key     string
	maxSize int64
}

// New creates a Source. Without WithClient it builds an S3 client from the
// default AWS configuration chain.
func New(ctx context.Context, cfg Config, opts ...Option) (*Source, error) {
	if !cfg.Enabled() || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{maxObjectSize: DefaultMaxObjectSize}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}

		// static credentials are optional; otherwise the default chain applies
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}

		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}

		awsOptions = append(awsOptions, o.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client = s3aws.NewFromConfig(awsConfig, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle

			for _, opt := range o.clientOptions {
				opt(so)
			}
		})
	}

	return &Source{
		client:  client,
		bucket:  cfg.Bucket,
		key:     cfg.Key,
		maxSize: o.maxObjectSize,
	}, nil
}

// Name implements source.Source.
func (s *Source) Name() string {
	return "s3://" + s.bucket + "/" + s.key
}

// Load fetches the object and parses it as dotenv.
func (s *Source) Load(ctx context.Context) (map[string]string, error) {
	out, err := s.client.GetObject(ctx, &s3aws.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "get")
	}
	defer out.Body.Close()

	if out.ContentLength != nil && *out.ContentLength > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrObjectTooLarge, *out.ContentLength)
	}

	// read one byte past the limit to detect oversized bodies without a length
	data, err := io.ReadAll(io.LimitReader(out.Body, s.maxSize+1))
	if err != nil {
		return nil, classifyS3Error(err, "read")
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrObjectTooLarge
	}

	values, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return values, nil
}

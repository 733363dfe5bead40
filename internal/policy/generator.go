package policy

import (
	"fmt"
	"io"
	"regexp"

	log "github.com/sirupsen/logrus"
)

const (
	// Partition is the ARN partition of generated resources
	Partition = "aws"
	// Service is the ARN service of generated resources
	Service = "s3"

	listBucketAction = "s3:ListBucket"
	allActions       = "s3:*"
)

// Mode selects which object-level actions a bucket policy grants
type Mode int

const (
	// ReadWrite grants every S3 action on the bucket objects
	ReadWrite Mode = iota
	// ReadOnly grants retrieval and listing actions on the bucket objects
	ReadOnly
)

func (m Mode) String() string {
	if m == ReadOnly {
		return "read-only"
	}
	return "read-write"
}

// Options configures policy generation. The zero value generates read-write policies.
type Options struct {
	ReadOnly bool `mapstructure:"readonly"`
}

// Mode returns the policy mode selected by the options
func (o Options) Mode() Mode {
	if o.ReadOnly {
		return ReadOnly
	}
	return ReadWrite
}

var bucketNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// BucketARN formats the bucket-level ARN "arn:<partition>:<service>:::<bucket>"
func BucketARN(bucket string) string {
	return fmt.Sprintf("arn:%s:%s:::%s", Partition, Service, bucket)
}

// ObjectsARN formats the ARN matching every object in the bucket
func ObjectsARN(bucket string) string {
	return BucketARN(bucket) + "/*"
}

// Generator produces IAM policy documents restricting access to a single S3 bucket
type Generator struct {
	logger log.FieldLogger
}

// NewGenerator creates a generator. A nil logger discards output.
func NewGenerator(logger log.FieldLogger) *Generator {
	if logger == nil {
		discard := log.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &Generator{logger: logger}
}

// Generate returns one policy document per bucket, in input order.
// Duplicate buckets produce duplicate documents.
func (g *Generator) Generate(buckets []string, opts Options) ([]Document, error) {
	if err := ValidateBuckets(buckets); err != nil {
		return nil, err
	}

	mode := opts.Mode()
	documents := make([]Document, 0, len(buckets))
	for _, bucket := range buckets {
		logger := g.logger.WithFields(log.Fields{
			"bucket": bucket,
			"mode":   mode.String(),
		})
		logger.Debugf("Generating %s policy", mode)

		documents = append(documents, bucketDocument(bucket, mode))
	}

	return documents, nil
}

// ValidateBuckets checks the bucket list before any document is built
func ValidateBuckets(buckets []string) error {
	if len(buckets) == 0 {
		return newConfigurationError("buckets", "at least one bucket name is required")
	}

	for i, bucket := range buckets {
		if bucket == "" {
			return newConfigurationError("buckets", "bucket #%d is empty", i+1)
		}
		if !bucketNamePattern.MatchString(bucket) {
			return newConfigurationError("buckets", "bucket #%d %q contains characters not allowed in a bucket name", i+1, bucket)
		}
	}

	return nil
}

func bucketDocument(bucket string, mode Mode) Document {
	var actions interface{} = allActions
	if mode == ReadOnly {
		actions = []string{"s3:Get*", "s3:List*"}
	}

	return Document{
		Statement: []Statement{
			{
				Effect:   EffectAllow,
				Action:   listBucketAction,
				Resource: BucketARN(bucket),
			},
			{
				Effect:   EffectAllow,
				Action:   actions,
				Resource: ObjectsARN(bucket),
			},
			{
				Effect: EffectDeny,
				Action: allActions,
				NotResource: []string{
					BucketARN(bucket),
					ObjectsARN(bucket),
				},
			},
		},
	}
}

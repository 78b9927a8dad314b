package identity

import (
	"context"
	"log/slog"
	"time"

	"rental-engine/internal/domain/verification"
	"rental-engine/internal/pkg/config"
	"rental-engine/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// GetItemAPI is the DynamoDB call the verification reader needs.
type GetItemAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Table layout:
//   - PK: user_id (string)
//   - status: provider status string
type verificationItem struct {
	UserID    string `dynamodbav:"user_id"`
	Status    string `dynamodbav:"status"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// DynamoReader reads identity-verification outcomes written by the KYC provider integration.
type DynamoReader struct {
	ddb       GetItemAPI
	tableName string
	timeout   time.Duration
}

func NewDynamoReader(ddb GetItemAPI, tableName string, timeout time.Duration) *DynamoReader {
	return &DynamoReader{
		ddb:       ddb,
		tableName: tableName,
		timeout:   timeout,
	}
}

// NewDynamoClient builds a client from the verification settings. Local DynamoDB does not
// validate credentials, but the SDK requires them, so an endpoint override also gets static ones.
func NewDynamoClient(ctx context.Context, cfg config.VerificationConfig) (*dynamodb.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.Endpoint != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load aws config")
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// Status returns StatusNone when the user has no verification record.
func (r *DynamoReader) Status(ctx context.Context, userID uuid.UUID) (verification.Status, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID.String()},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", errs.Wrap(err, "failed to read verification status")
	}
	if len(out.Item) == 0 {
		return verification.StatusNone, nil
	}

	var item verificationItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return "", errs.Wrap(err, "failed to decode verification item")
	}

	status, err := verification.ParseStatus(item.Status)
	if err != nil {
		slog.Warn("unknown verification status", "user_id", userID.String(), "status", item.Status)
		return "", err
	}
	return status, nil
}

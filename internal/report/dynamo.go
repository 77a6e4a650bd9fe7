package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/socialpulse/internal/models"
)

// latestReportKey is the fixed partition key: the table only ever holds the
// most recent report, replaced wholesale each run.
const latestReportKey = "latest"

// DynamoStore mirrors the artifact into a DynamoDB table for deployments
// where downstream consumers read from AWS instead of the filesystem.
type DynamoStore struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoStore(client *dynamodb.Client, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func (s *DynamoStore) Save(ctx context.Context, report models.Report) error {
	item, err := attributevalue.MarshalMap(report)
	if err != nil {
		return fmt.Errorf("[DynamoStore] failed to marshal report: %w", err)
	}
	item["report_id"] = &types.AttributeValueMemberS{Value: latestReportKey}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoStore] failed to store report: %w", err)
	}

	slog.Info("[DynamoStore] Report stored",
		slog.String("table", s.table),
		slog.String("run_id", report.RunID))
	return nil
}

package flags

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoKV.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// flagsItem is the DynamoDB item holding one scope's flag set.
type flagsItem struct {
	Scope     string          `dynamodbav:"scope"`
	Flags     map[string]bool `dynamodbav:"flags"`
	UpdatedAt string          `dynamodbav:"updatedAt"`
}

// DynamoKV persists flags as a single item per scope.
type DynamoKV struct {
	Client DynamoAPI
	Table  string
	Scope  string
}

// NewDynamoKV builds a DynamoKV from the default AWS config chain. endpoint
// overrides the service URL, e.g. for DynamoDB Local.
func NewDynamoKV(ctx context.Context, region, endpoint, table, scope string) (*DynamoKV, error) {
	if table == "" {
		return nil, fmt.Errorf("dynamodb flags table is required")
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &DynamoKV{Client: client, Table: table, Scope: scope}, nil
}

func (d *DynamoKV) Load(ctx context.Context) (map[string]bool, error) {
	key, err := d.key()
	if err != nil {
		return nil, err
	}
	out, err := d.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.Table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get flags item: %w", err)
	}
	if out.Item == nil {
		return map[string]bool{}, nil
	}
	var item flagsItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal flags item: %w", err)
	}
	if item.Flags == nil {
		item.Flags = map[string]bool{}
	}
	return item.Flags, nil
}

func (d *DynamoKV) Save(ctx context.Context, values map[string]bool) error {
	av, err := attributevalue.MarshalMap(flagsItem{
		Scope:     d.scope(),
		Flags:     values,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal flags item: %w", err)
	}
	if _, err := d.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.Table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("put flags item: %w", err)
	}
	return nil
}

func (d *DynamoKV) Clear(ctx context.Context) error {
	key, err := d.key()
	if err != nil {
		return err
	}
	if _, err := d.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.Table),
		Key:       key,
	}); err != nil {
		return fmt.Errorf("delete flags item: %w", err)
	}
	return nil
}

func (d *DynamoKV) key() (map[string]types.AttributeValue, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"scope": d.scope()})
	if err != nil {
		return nil, fmt.Errorf("marshal flags key: %w", err)
	}
	return key, nil
}

func (d *DynamoKV) scope() string {
	if d.Scope == "" {
		return "global"
	}
	return d.Scope
}

var _ KVStore = (*DynamoKV)(nil)

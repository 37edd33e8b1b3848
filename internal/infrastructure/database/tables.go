package database

import (
	"context"
	"errors"
	"log"
	"time"

	appconfig "order_management/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const tableReadyTimeout = 30 * time.Second

// TableAPI is what table bootstrap needs from the DynamoDB client.
type TableAPI interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// TableSpecs describes every table the service uses, keyed by name.
//
//   - customers, products, orders: PK id
//   - payments: PK order_id, SK id (one partition per order ledger)
func TableSpecs(cfg appconfig.Config) []*dynamodb.CreateTableInput {
	byID := func(name string) *dynamodb.CreateTableInput {
		return &dynamodb.CreateTableInput{
			TableName: aws.String(name),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
			BillingMode: types.BillingModePayPerRequest,
		}
	}

	return []*dynamodb.CreateTableInput{
		byID(cfg.DynamoDB.CustomersTable),
		byID(cfg.DynamoDB.ProductsTable),
		byID(cfg.DynamoDB.OrdersTable),
		{
			TableName: aws.String(cfg.DynamoDB.PaymentsTable),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("order_id"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("order_id"), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeRange},
			},
			BillingMode: types.BillingModePayPerRequest,
		},
	}
}

// EnsureTables creates any missing table and waits until it is active.
// Existing tables are left untouched.
func EnsureTables(ctx context.Context, client TableAPI, cfg appconfig.Config) error {
	for _, spec := range TableSpecs(cfg) {
		name := aws.ToString(spec.TableName)

		_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: spec.TableName})
		if err == nil {
			continue
		}
		var nf *types.ResourceNotFoundException
		if !errors.As(err, &nf) {
			return err
		}

		log.Printf("[database][tables] creating table=%s", name)
		if _, err := client.CreateTable(ctx, spec); err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return err
		}

		waiter := dynamodb.NewTableExistsWaiter(client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: spec.TableName}, tableReadyTimeout); err != nil {
			return err
		}
		log.Printf("[database][tables] table ready table=%s", name)
	}
	return nil
}

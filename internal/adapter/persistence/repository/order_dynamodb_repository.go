package repository

import (
	"context"
	"strconv"

	"order_management/internal/domain/entities"
	"order_management/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type orderLineItem struct {
	ProductID      string `dynamodbav:"product_id"`
	ProductName    string `dynamodbav:"product_name"`
	Quantity       int64  `dynamodbav:"quantity"`
	UnitPriceCents int64  `dynamodbav:"unit_price_cents"`
}

type orderItem struct {
	ID         string          `dynamodbav:"id"`
	CustomerID string          `dynamodbav:"customer_id"`
	Status     string          `dynamodbav:"status"`
	TotalCents int64           `dynamodbav:"total_cents"`
	Lines      []orderLineItem `dynamodbav:"lines"`
	PaymentIDs []string        `dynamodbav:"payment_ids"`
	CreatedAt  string          `dynamodbav:"created_at"`
	UpdatedAt  string          `dynamodbav:"updated_at"`
	Version    int64           `dynamodbav:"version"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Lines are embedded in the order item, so an order and its lines are one write.
// Every status change bumps version and is conditioned on the version the caller read.

type OrderDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoAPI, tableName string) *OrderDynamoRepository {
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            keyID(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) List(ctx context.Context) ([]entities.Order, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	orders := []entities.Order{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []orderItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			orders = append(orders, fromOrderItem(it))
		}
	}
	return orders, nil
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus, expectedVersion int64) (entities.Order, error) {
	expr, names, values := orderStatusUpdate(status, expectedVersion, formatTime(nowUTC()))

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       keyID(id),
		ConditionExpression:       aws.String(orderVersionCondition),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Order{}, interfaces.ErrStaleOrder
		}
		return entities.Order{}, err
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

const orderVersionCondition = "attribute_exists(#id) AND #version = :expected_version"

// orderStatusUpdate builds the version-guarded status write shared by UpdateStatus and the
// payment append transaction.
func orderStatusUpdate(status entities.OrderStatus, expectedVersion int64, now string) (string, map[string]string, map[string]types.AttributeValue) {
	expr := "SET #status = :status, #updated_at = :updated_at, #version = #version + :one"
	names := map[string]string{
		"#id":         "id",
		"#status":     "status",
		"#updated_at": "updated_at",
		"#version":    "version",
	}
	values := map[string]types.AttributeValue{
		":status":           &types.AttributeValueMemberS{Value: string(status)},
		":updated_at":       &types.AttributeValueMemberS{Value: now},
		":one":              &types.AttributeValueMemberN{Value: "1"},
		":expected_version": &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
	}
	return expr, names, values
}

func toOrderItem(o entities.Order) orderItem {
	lines := make([]orderLineItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineItem{
			ProductID:      l.ProductID,
			ProductName:    l.ProductName,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		})
	}
	paymentIDs := o.PaymentIDs
	if paymentIDs == nil {
		paymentIDs = []string{}
	}
	return orderItem{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		TotalCents: o.TotalCents,
		Lines:      lines,
		PaymentIDs: paymentIDs,
		CreatedAt:  formatTime(o.CreatedAt),
		UpdatedAt:  formatTime(o.UpdatedAt),
		Version:    o.Version,
	}
}

func fromOrderItem(it orderItem) entities.Order {
	lines := make([]entities.OrderLine, 0, len(it.Lines))
	for _, l := range it.Lines {
		lines = append(lines, entities.OrderLine{
			ProductID:      l.ProductID,
			ProductName:    l.ProductName,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		})
	}
	paymentIDs := it.PaymentIDs
	if paymentIDs == nil {
		paymentIDs = []string{}
	}
	return entities.Order{
		ID:         it.ID,
		CustomerID: it.CustomerID,
		Status:     entities.OrderStatus(it.Status),
		TotalCents: it.TotalCents,
		Lines:      lines,
		PaymentIDs: paymentIDs,
		CreatedAt:  parseTime(it.CreatedAt),
		UpdatedAt:  parseTime(it.UpdatedAt),
		Version:    it.Version,
	}
}

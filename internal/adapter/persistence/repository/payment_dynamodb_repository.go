package repository

import (
	"context"
	"fmt"

	"order_management/internal/domain/entities"
	"order_management/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type paymentItem struct {
	OrderID     string `dynamodbav:"order_id"`
	ID          string `dynamodbav:"id"`
	Method      string `dynamodbav:"method"`
	AmountCents int64  `dynamodbav:"amount_cents"`
	PaidAt      string `dynamodbav:"paid_at"`
}

// PaymentDynamoRepository is the payments ledger.
//
// Table requirements:
//   - PK: order_id (string), SK: id (string)
//
// Items are only ever put, never updated or deleted.

type PaymentDynamoRepository struct {
	ddb         DynamoAPI
	tableName   string
	ordersTable string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tableName, ordersTable string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName, ordersTable: ordersTable}
}

// Append records p and moves the order to next in one transaction. The order write is
// conditioned on order.Version; losing that race (or a concurrent transaction on the same
// items) yields interfaces.ErrStaleOrder and nothing is written.
func (r *PaymentDynamoRepository) Append(ctx context.Context, p entities.Payment, order entities.Order, next entities.OrderStatus) error {
	if p.OrderID != order.ID {
		return fmt.Errorf("payment %s belongs to order %s, not %s", p.ID, p.OrderID, order.ID)
	}

	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return err
	}

	expr, names, values := orderStatusUpdate(next, order.Version, formatTime(p.PaidAt))
	expr += ", #payment_ids = list_append(if_not_exists(#payment_ids, :empty), :payment_id)"
	names["#payment_ids"] = "payment_ids"
	values[":empty"] = &types.AttributeValueMemberL{Value: []types.AttributeValue{}}
	values[":payment_id"] = &types.AttributeValueMemberL{Value: []types.AttributeValue{
		&types.AttributeValueMemberS{Value: p.ID},
	}}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                av,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Update: &types.Update{
					TableName:                 aws.String(r.ordersTable),
					Key:                       keyID(order.ID),
					ConditionExpression:       aws.String(orderVersionCondition),
					UpdateExpression:          aws.String(expr),
					ExpressionAttributeNames:  names,
					ExpressionAttributeValues: values,
				},
			},
		},
	})
	if err != nil {
		if cancelledAt(err, 1, reasonConditionalCheckFailed, reasonTransactionConflict) ||
			cancelledAt(err, 0, reasonTransactionConflict) {
			return interfaces.ErrStaleOrder
		}
		return err
	}
	return nil
}

// ListByOrderID reads an order's ledger with a strongly consistent query.
func (r *PaymentDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("#order_id = :order_id"),
		ExpressionAttributeNames: map[string]string{
			"#order_id": "order_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConsistentRead: aws.Bool(true),
	})

	payments := []entities.Payment{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []paymentItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			payments = append(payments, fromPaymentItem(it))
		}
	}
	return payments, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		OrderID:     p.OrderID,
		ID:          p.ID,
		Method:      string(p.Method),
		AmountCents: p.AmountCents,
		PaidAt:      formatTime(p.PaidAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		ID:          it.ID,
		OrderID:     it.OrderID,
		Method:      entities.PaymentMethod(it.Method),
		AmountCents: it.AmountCents,
		PaidAt:      parseTime(it.PaidAt),
	}
}

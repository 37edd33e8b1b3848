package repository

import (
	"context"
	"strings"

	"order_management/internal/domain/entities"
	"order_management/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type productItem struct {
	ID         string `dynamodbav:"id"`
	Name       string `dynamodbav:"name"`
	NameLower  string `dynamodbav:"name_lower"`
	Category   string `dynamodbav:"category"`
	PriceCents int64  `dynamodbav:"price_cents"`
	Active     bool   `dynamodbav:"active"`
}

// ProductDynamoRepository persists the catalog in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// name_lower is a denormalized copy of name used for case-insensitive contains().

type ProductDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IProductRepository = (*ProductDynamoRepository)(nil)

func NewProductDynamoRepository(ddb DynamoAPI, tableName string) *ProductDynamoRepository {
	return &ProductDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ProductDynamoRepository) Create(ctx context.Context, p entities.Product) (entities.Product, error) {
	av, err := attributevalue.MarshalMap(toProductItem(p))
	if err != nil {
		return entities.Product{}, err
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
		return entities.Product{}, err
	}
	return p, nil
}

func (r *ProductDynamoRepository) GetByID(ctx context.Context, id string) (entities.Product, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       keyID(id),
	})
	if err != nil {
		return entities.Product{}, err
	}
	if len(out.Item) == 0 {
		return entities.Product{}, nil
	}

	var it productItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Product{}, err
	}
	return fromProductItem(it), nil
}

func (r *ProductDynamoRepository) List(ctx context.Context, filter interfaces.ProductFilter) ([]entities.Product, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if expr, names, values := productFilterExpression(filter); expr != "" {
		in.FilterExpression = aws.String(expr)
		in.ExpressionAttributeNames = names
		in.ExpressionAttributeValues = values
	}

	p := dynamodb.NewScanPaginator(r.ddb, in)
	products := []entities.Product{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []productItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			products = append(products, fromProductItem(it))
		}
	}
	return products, nil
}

// SetActive flips the soft-delete flag. A zero Product means the id does not exist.
func (r *ProductDynamoRepository) SetActive(ctx context.Context, id string, active bool) (entities.Product, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 keyID(id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #active = :active"),
		ExpressionAttributeNames: map[string]string{
			"#id":     "id",
			"#active": "active",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberBOOL{Value: active},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Product{}, nil
		}
		return entities.Product{}, err
	}

	var it productItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Product{}, err
	}
	return fromProductItem(it), nil
}

func productFilterExpression(f interfaces.ProductFilter) (string, map[string]string, map[string]types.AttributeValue) {
	var clauses []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}

	if name := strings.ToLower(strings.TrimSpace(f.NameContains)); name != "" {
		clauses = append(clauses, "contains(#name_lower, :name)")
		names["#name_lower"] = "name_lower"
		values[":name"] = &types.AttributeValueMemberS{Value: name}
	}
	if f.Category != "" {
		clauses = append(clauses, "#category = :category")
		names["#category"] = "category"
		values[":category"] = &types.AttributeValueMemberS{Value: f.Category}
	}
	if f.Active != nil {
		clauses = append(clauses, "#active = :active")
		names["#active"] = "active"
		values[":active"] = &types.AttributeValueMemberBOOL{Value: *f.Active}
	}
	if len(clauses) == 0 {
		return "", nil, nil
	}
	return strings.Join(clauses, " AND "), names, values
}

func toProductItem(p entities.Product) productItem {
	return productItem{
		ID:         p.ID,
		Name:       p.Name,
		NameLower:  strings.ToLower(p.Name),
		Category:   p.Category,
		PriceCents: p.PriceCents,
		Active:     p.Active,
	}
}

func fromProductItem(it productItem) entities.Product {
	return entities.Product{
		ID:         it.ID,
		Name:       it.Name,
		Category:   it.Category,
		PriceCents: it.PriceCents,
		Active:     it.Active,
	}
}

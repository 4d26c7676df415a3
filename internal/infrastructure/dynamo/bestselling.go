package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/kapee-shop/api/internal/domain"
)

// BestSellingRepo provides typed DynamoDB operations for the best_selling table.
type BestSellingRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBestSellingRepo(client *dynamodb.Client, tableName string) *BestSellingRepo {
	return &BestSellingRepo{client: client, tableName: tableName}
}

func (r *BestSellingRepo) Put(ctx context.Context, e *domain.BestSellingEntry) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal best-selling entry: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *BestSellingRepo) Get(ctx context.Context, entryID string) (*domain.BestSellingEntry, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("entry_id", entryID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("best-selling entry not found: %w", domain.ErrNotFound)
	}
	var e domain.BestSellingEntry
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByProduct queries the product_id-index GSI. The GSI backs the
// one-entry-per-product uniqueness check.
func (r *BestSellingRepo) GetByProduct(ctx context.Context, productID string) (*domain.BestSellingEntry, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("product_id-index"),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": "product_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: productID}},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("best-selling entry not found: %w", domain.ErrNotFound)
	}
	var e domain.BestSellingEntry
	if err := attributevalue.UnmarshalMap(out.Items[0], &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *BestSellingRepo) Update(ctx context.Context, entryID string, updates map[string]interface{}) (*domain.BestSellingEntry, error) {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return nil, err
	}
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("entry_id", entryID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ConditionExpression:       aws.String("attribute_exists(entry_id)"),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("best-selling entry not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	var e domain.BestSellingEntry
	if err := attributevalue.UnmarshalMap(out.Attributes, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// IncrementSales applies the delta with an ADD expression, so concurrent
// adjustments never lose updates to a read-modify-write race.
func (r *BestSellingRepo) IncrementSales(ctx context.Context, entryID string, delta int) (*domain.BestSellingEntry, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("entry_id", entryID),
		UpdateExpression: aws.String("ADD sales_count :d"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":d": &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
		},
		ConditionExpression: aws.String("attribute_exists(entry_id)"),
		ReturnValues:        types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("best-selling entry not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	var e domain.BestSellingEntry
	if err := attributevalue.UnmarshalMap(out.Attributes, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *BestSellingRepo) Delete(ctx context.Context, entryID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("entry_id", entryID),
	})
	return err
}

func (r *BestSellingRepo) Scan(ctx context.Context) ([]domain.BestSellingEntry, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var entries []domain.BestSellingEntry
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

package dynamo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/kapee-shop/api/internal/domain"
)

// BlogRepo provides typed DynamoDB operations for the blogs table.
type BlogRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBlogRepo(client *dynamodb.Client, tableName string) *BlogRepo {
	return &BlogRepo{client: client, tableName: tableName}
}

func (r *BlogRepo) Put(ctx context.Context, b *domain.Blog) error {
	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return fmt.Errorf("marshal blog: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *BlogRepo) Get(ctx context.Context, blogID string) (*domain.Blog, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("blog_id", blogID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("blog not found: %w", domain.ErrNotFound)
	}
	var b domain.Blog
	if err := attributevalue.UnmarshalMap(out.Item, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ScanPublished returns all published blogs.
func (r *BlogRepo) ScanPublished(ctx context.Context) ([]domain.Blog, error) {
	return r.scanFiltered(ctx, "published = :v", map[string]types.AttributeValue{
		":v": &types.AttributeValueMemberBOOL{Value: true},
	}, nil)
}

func (r *BlogRepo) ScanByCategory(ctx context.Context, category string) ([]domain.Blog, error) {
	return r.scanFiltered(ctx, "#c = :v", map[string]types.AttributeValue{
		":v": &types.AttributeValueMemberS{Value: category},
	}, map[string]string{"#c": "category"})
}

func (r *BlogRepo) ScanByAuthor(ctx context.Context, author string) ([]domain.Blog, error) {
	return r.scanFiltered(ctx, "author = :v", map[string]types.AttributeValue{
		":v": &types.AttributeValueMemberS{Value: author},
	}, nil)
}

// Search matches term against title, content and category, case-insensitive.
// DynamoDB contains() is case-sensitive, so matching happens client-side
// after a scan, same trade-off as the product search.
func (r *BlogRepo) Search(ctx context.Context, term string) ([]domain.Blog, error) {
	all, err := r.scanFiltered(ctx, "published = :v", map[string]types.AttributeValue{
		":v": &types.AttributeValueMemberBOOL{Value: true},
	}, nil)
	if err != nil {
		return nil, err
	}
	t := strings.ToLower(term)
	var matched []domain.Blog
	for _, b := range all {
		if strings.Contains(strings.ToLower(b.Title), t) ||
			strings.Contains(strings.ToLower(b.Content), t) ||
			strings.Contains(strings.ToLower(b.Category), t) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (r *BlogRepo) scanFiltered(ctx context.Context, filter string, values map[string]types.AttributeValue, names map[string]string) ([]domain.Blog, error) {
	input := &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          aws.String(filter),
		ExpressionAttributeValues: values,
	}
	if names != nil {
		input.ExpressionAttributeNames = names
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, err
	}
	var blogs []domain.Blog
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepo) Update(ctx context.Context, blogID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("blog_id", blogID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *BlogRepo) Delete(ctx context.Context, blogID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("blog_id", blogID),
	})
	return err
}

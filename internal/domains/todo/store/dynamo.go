package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"keel/config"
	"keel/infras/otel"
	"keel/internal/domains/todo/model"
	"keel/shared/constant"
	"keel/shared/failure"
)

type dynamoStore struct {
	client *dynamodb.Client
	table  string
	index  string
	otel   otel.Otel
}

// NewDynamo returns the DynamoDB-backed todo store. The table is keyed
// (owner_id, todo_id) with a local secondary index on created_at for the
// per-owner creation-order scan.
func NewDynamo(client *dynamodb.Client, cfg *config.Config, otl otel.Otel) Todo {
	return &dynamoStore{
		client: client,
		table:  cfg.DB.Dynamo.Table,
		index:  cfg.DB.Dynamo.CreatedAtIndex,
		otel:   otl,
	}
}

func itemKey(ownerID, todoID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		model.FieldOwnerID: &types.AttributeValueMemberS{Value: ownerID},
		model.FieldTodoID:  &types.AttributeValueMemberS{Value: todoID},
	}
}

func (s *dynamoStore) GetByID(ctx context.Context, ownerID, todoID string) (item *model.Todo, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.GetByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelTableAttributeKey, s.table)

	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(ownerID, todoID),
	})
	if err != nil {
		log.Error().Err(err).Str("todoId", todoID).Msg("failed to get todo item")

		return nil, failure.StoreRead(fmt.Errorf("failed to get data (%s): %w", model.EntityName, err))
	}

	if resp.Item == nil {
		return nil, nil
	}

	item = &model.Todo{}
	if err = attributevalue.UnmarshalMap(resp.Item, item); err != nil {
		log.Error().Err(err).Str("todoId", todoID).Msg("failed to unmarshal todo item")

		return nil, failure.StoreRead(fmt.Errorf("failed to unmarshal data (%s): %w", model.EntityName, err))
	}

	return item, nil
}

func (s *dynamoStore) Insert(ctx context.Context, item model.Todo) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelTableAttributeKey, s.table)

	attrs, err := attributevalue.MarshalMap(item)
	if err != nil {
		return failure.StoreWrite(fmt.Errorf("failed to marshal data (%s): %w", model.EntityName, err))
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      attrs,
	})
	if err != nil {
		log.Error().Err(err).Str("todoId", item.TodoID).Msg("failed to insert todo item")

		return failure.StoreWrite(fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err))
	}

	return nil
}

func (s *dynamoStore) Update(ctx context.Context, ownerID, todoID string, fields Fields) (updated model.Todo, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelTableAttributeKey, s.table)

	// name is a DynamoDB reserved word, hence the expression alias.
	resp, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.table),
		Key:                 itemKey(ownerID, todoID),
		UpdateExpression:    aws.String("SET #name = :name, due_date = :due_date, done = :done"),
		ConditionExpression: aws.String("attribute_exists(todo_id)"),
		ExpressionAttributeNames: map[string]string{
			"#name": model.FieldName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":     &types.AttributeValueMemberS{Value: fields.Name},
			":due_date": &types.AttributeValueMemberS{Value: fields.DueDate},
			":done":     &types.AttributeValueMemberBOOL{Value: fields.Done},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		log.Error().Err(err).Str("todoId", todoID).Msg("failed to update todo item")

		return updated, failure.StoreWrite(fmt.Errorf("failed to update data (%s): %w", model.EntityName, err))
	}

	if err = attributevalue.UnmarshalMap(resp.Attributes, &updated); err != nil {
		return updated, failure.StoreWrite(fmt.Errorf("failed to unmarshal data (%s): %w", model.EntityName, err))
	}

	return updated, nil
}

func (s *dynamoStore) SetAttachmentURL(ctx context.Context, ownerID, todoID, url string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.SetAttachmentURL")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelTableAttributeKey, s.table)

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.table),
		Key:                 itemKey(ownerID, todoID),
		UpdateExpression:    aws.String("SET attachment_url = :url"),
		ConditionExpression: aws.String("attribute_exists(todo_id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":url": &types.AttributeValueMemberS{Value: url},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("todoId", todoID).Msg("failed to set attachment url")

		return failure.StoreWrite(fmt.Errorf("failed to update data (%s): %w", model.EntityName, err))
	}

	return nil
}

func (s *dynamoStore) Delete(ctx context.Context, ownerID, todoID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelTableAttributeKey, s.table)

	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(ownerID, todoID),
	})
	if err != nil {
		log.Error().Err(err).Str("todoId", todoID).Msg("failed to delete todo item")

		return failure.StoreWrite(fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err))
	}

	return nil
}

func (s *dynamoStore) ListPage(ctx context.Context, ownerID string, after Position, limit int) (items []model.Todo, next Position, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.ListPage")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		constant.OtelTableAttributeKey: s.table,
		constant.OtelOwnerAttributeKey: ownerID,
	})

	resp, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(s.index),
		KeyConditionExpression: aws.String("owner_id = :owner_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner_id": &types.AttributeValueMemberS{Value: ownerID},
		},
		Limit:             aws.Int32(int32(limit)), //nolint:gosec
		ExclusiveStartKey: after,
		ScanIndexForward:  aws.Bool(true),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to query todo items")

		return nil, nil, failure.StoreRead(fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err))
	}

	items = make([]model.Todo, 0, len(resp.Items))
	if err = attributevalue.UnmarshalListOfMaps(resp.Items, &items); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal todo items")

		return nil, nil, failure.StoreRead(fmt.Errorf("failed to unmarshal data (%s): %w", model.EntityName, err))
	}

	if len(resp.LastEvaluatedKey) > 0 {
		next = Position(resp.LastEvaluatedKey)
	}

	return items, next, nil
}

func (s *dynamoStore) Count(ctx context.Context, ownerID string) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".todo.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		constant.OtelTableAttributeKey: s.table,
		constant.OtelOwnerAttributeKey: ownerID,
	})

	var startKey map[string]types.AttributeValue

	for {
		resp, qErr := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			KeyConditionExpression: aws.String("owner_id = :owner_id"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":owner_id": &types.AttributeValueMemberS{Value: ownerID},
			},
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		})
		if qErr != nil {
			log.Error().Err(qErr).Msg("failed to count todo items")

			err = failure.StoreRead(fmt.Errorf("failed to count data (%s): %w", model.EntityName, qErr))

			return 0, err
		}

		total += int(resp.Count)

		if len(resp.LastEvaluatedKey) == 0 {
			break
		}

		startKey = resp.LastEvaluatedKey
	}

	return total, nil
}

// IsConditionalCheckFailed reports whether a write failed its existence
// condition, which is the expected outcome when racing a delete.
func IsConditionalCheckFailed(err error) bool {
	var cond *types.ConditionalCheckFailedException

	return errors.As(err, &cond)
}

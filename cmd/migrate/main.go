package main

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"

	"keel/config"
	"keel/infras/dynamo"
	"keel/internal/domains/todo/model"
	"keel/shared/logger"
)

const tableWaitTimeout = 2 * time.Minute

// Provisions the todo table. Safe to run repeatedly: an existing table is
// left untouched.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx := context.Background()
	client := dynamo.New(cfg)
	table := cfg.DB.Dynamo.Table

	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(table),
	})
	if err == nil {
		log.Info().Str("table", table).Msg("Table already exists, nothing to do")

		return
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		log.Fatal().Err(err).Str("table", table).Msg("Failed to describe table")
	}

	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String(model.FieldOwnerID),
				AttributeType: types.ScalarAttributeTypeS,
			},
			{
				AttributeName: aws.String(model.FieldTodoID),
				AttributeType: types.ScalarAttributeTypeS,
			},
			{
				AttributeName: aws.String(model.FieldCreatedAt),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String(model.FieldOwnerID),
				KeyType:       types.KeyTypeHash,
			},
			{
				AttributeName: aws.String(model.FieldTodoID),
				KeyType:       types.KeyTypeRange,
			},
		},
		LocalSecondaryIndexes: []types.LocalSecondaryIndex{
			{
				IndexName: aws.String(cfg.DB.Dynamo.CreatedAtIndex),
				KeySchema: []types.KeySchemaElement{
					{
						AttributeName: aws.String(model.FieldOwnerID),
						KeyType:       types.KeyTypeHash,
					},
					{
						AttributeName: aws.String(model.FieldCreatedAt),
						KeyType:       types.KeyTypeRange,
					},
				},
				Projection: &types.Projection{
					ProjectionType: types.ProjectionTypeAll,
				},
			},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Str("table", table).Msg("Failed to create table")
	}

	waiter := dynamodb.NewTableExistsWaiter(client)

	err = waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(table),
	}, tableWaitTimeout)
	if err != nil {
		log.Fatal().Err(err).Str("table", table).Msg("Timed out waiting for table to become active")
	}

	log.Info().
		Str("table", table).
		Str("index", cfg.DB.Dynamo.CreatedAtIndex).
		Msg("Table created")
}

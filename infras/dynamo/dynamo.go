package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog/log"

	"keel/config"
)

// New builds the process-wide DynamoDB client. The endpoint override is for
// dynamodb-local; leave it empty against real AWS.
func New(config *config.Config) *dynamodb.Client {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.DB.Dynamo.AccessKeyID,
		config.DB.Dynamo.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.TODO(),
		awsConfig.WithRegion(config.DB.Dynamo.Region),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS configuration for DynamoDB")
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if config.DB.Dynamo.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.DB.Dynamo.Endpoint)
		}
	})

	log.Info().
		Str("table", config.DB.Dynamo.Table).
		Str("region", config.DB.Dynamo.Region).
		Msg("DynamoDB client initialized")

	return client
}

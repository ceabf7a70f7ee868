package db

import (
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/tabscribe/tabscribe/constants"
)

// ScoreMetadata is the catalog row for one parsed source file.
type ScoreMetadata struct {
	Title    string
	Tuning   string
	Beat     string
	BarCount int
}

func newClient() (*dynamodb.DynamoDB, error) {
	cfg := aws.NewConfig()
	if endpoint := os.Getenv("TABSCRIBE_DYNAMO_ENDPOINT"); endpoint != "" {
		cfg = cfg.WithRegion("localhost").WithEndpoint(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return dynamodb.New(sess), nil
}

// PutScoreMetadata upserts one catalog row keyed by filename.
func PutScoreMetadata(filename string, m ScoreMetadata) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	item := map[string]*dynamodb.AttributeValue{
		"PK":       {S: aws.String(filename)},
		"Title":    {S: aws.String(m.Title)},
		"Tuning":   {S: aws.String(m.Tuning)},
		"Beat":     {S: aws.String(m.Beat)},
		"BarCount": {N: aws.String(strconv.Itoa(m.BarCount))},
	}
	_, err = client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(constants.GetCatalogTable()),
		Item:      item,
	})
	return err
}

// GetScoreMetadatas fetches catalog rows for up to 10 filenames.
func GetScoreMetadatas(filenames []string) (map[string]ScoreMetadata, error) {
	res := make(map[string]ScoreMetadata)
	if len(filenames) == 0 {
		return res, nil
	}
	if len(filenames) > 10 {
		panic("Not supposed to pass in more than 10 filenames!")
	}

	client, err := newClient()
	if err != nil {
		return nil, err
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filename)},
		})
	}

	table := constants.GetCatalogTable()
	dbres, err := client.BatchGetItem(&dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			table: {Keys: keys},
		},
	})
	if err != nil {
		return nil, err
	}

	for _, v := range dbres.Responses[table] {
		var m ScoreMetadata
		if v["Title"] != nil && v["Title"].S != nil {
			m.Title = *v["Title"].S
		}
		if v["Tuning"] != nil && v["Tuning"].S != nil {
			m.Tuning = *v["Tuning"].S
		}
		if v["Beat"] != nil && v["Beat"].S != nil {
			m.Beat = *v["Beat"].S
		}
		if v["BarCount"] != nil && v["BarCount"].N != nil {
			count, _ := strconv.Atoi(*v["BarCount"].N)
			m.BarCount = count
		}
		res[*v["PK"].S] = m
	}
	return res, nil
}

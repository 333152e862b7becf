package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"moviecatalog/errs"
	"moviecatalog/movie"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const tableWaitTimeout = 30 * time.Second

// counterID keys the item that hands out movie ids. Real movies start at 1.
const counterID = 0

type MovieRepository struct {
	client *dynamodb.Client
	table  string
	now    func() time.Time
}

type movieItem struct {
	ID          int64   `dynamodbav:"id"`
	Title       string  `dynamodbav:"title"`
	Year        *int    `dynamodbav:"year,omitempty"`
	Poster      *string `dynamodbav:"poster,omitempty"`
	MovieLink   *string `dynamodbav:"movie_link,omitempty"`
	Description *string `dynamodbav:"description,omitempty"`
	Genres      string  `dynamodbav:"genres"`
	CreatedAt   string  `dynamodbav:"created_at"`
}

func NewMovieRepository(client *dynamodb.Client, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func newMovieItem(id int64, d movie.Draft, createdAt time.Time) movieItem {
	return movieItem{
		ID:          id,
		Title:       d.Title,
		Year:        d.Year,
		Poster:      d.Poster,
		MovieLink:   d.MovieLink,
		Description: d.Description,
		Genres:      movie.JoinGenres(d.Genres),
		CreatedAt:   createdAt.Format(time.RFC3339Nano),
	}
}

func (item movieItem) toMovie() (movie.Movie, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: parse created_at: %w", err)
	}
	return movie.Movie{
		ID:          item.ID,
		Title:       item.Title,
		Year:        item.Year,
		Poster:      item.Poster,
		MovieLink:   item.MovieLink,
		Description: item.Description,
		Genres:      movie.SplitGenres(item.Genres),
		CreatedAt:   createdAt,
	}, nil
}

func (r *MovieRepository) CreateMovie(ctx context.Context, d movie.Draft) (movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}

	id, err := r.nextID(ctx)
	if err != nil {
		return movie.Movie{}, err
	}
	createdAt := r.now()
	item := newMovieItem(id, d, createdAt)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: marshal movie: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return movie.Movie{}, errs.Errorf(errs.ECONFLICT, "movie %d already exists", item.ID)
		}
		return movie.Movie{}, fmt.Errorf("dynamodb: put movie: %w", err)
	}

	return r.movieByID(ctx, item.ID)
}

// nextID atomically increments the counter item and returns the new value.
func (r *MovieRepository) nextID(ctx context.Context) (int64, error) {
	out, err := r.client.UpdateItem(ctx, nextIDInput(r.table))
	if err != nil {
		return 0, fmt.Errorf("dynamodb: allocate movie id: %w", err)
	}

	var counter struct {
		Seq int64 `dynamodbav:"seq"`
	}
	if err := attributevalue.UnmarshalMap(out.Attributes, &counter); err != nil {
		return 0, fmt.Errorf("dynamodb: unmarshal movie id: %w", err)
	}
	if counter.Seq <= counterID {
		return 0, fmt.Errorf("dynamodb: invalid movie id %d", counter.Seq)
	}
	return counter.Seq, nil
}

func nextIDInput(table string) *dynamodb.UpdateItemInput {
	return &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberN{Value: strconv.Itoa(counterID)},
		},
		UpdateExpression:         aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{"#seq": "seq"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	}
}

// scanMoviesInput reads every movie and skips the id counter.
func scanMoviesInput(table string) *dynamodb.ScanInput {
	return &dynamodb.ScanInput{
		TableName:                aws.String(table),
		ConsistentRead:           aws.Bool(true),
		FilterExpression:         aws.String("#id <> :counter"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":counter": &types.AttributeValueMemberN{Value: strconv.Itoa(counterID)},
		},
	}
}

func (r *MovieRepository) movieByID(ctx context.Context, id int64) (movie.Movie, error) {
	key, err := attributevalue.MarshalMap(map[string]int64{"id": id})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: marshal key: %w", err)
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: get movie: %w", err)
	}
	if len(out.Item) == 0 {
		return movie.Movie{}, fmt.Errorf("dynamodb: movie %d not found after insert", id)
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}
	return item.toMovie()
}

func (r *MovieRepository) AllMovies(ctx context.Context) ([]movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	movies := []movie.Movie{}
	paginator := dynamodb.NewScanPaginator(r.client, scanMoviesInput(r.table))
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb: scan movies: %w", err)
		}

		var items []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("dynamodb: unmarshal movies: %w", err)
		}
		for _, item := range items {
			m, err := item.toMovie()
			if err != nil {
				return nil, err
			}
			movies = append(movies, m)
		}
	}

	sortNewestFirst(movies)
	return movies, nil
}

// Ping reports 1 when the movies table can be described.
func (r *MovieRepository) Ping(ctx context.Context) (int, error) {
	if err := validateTable(r.table); err != nil {
		return 0, err
	}
	if _, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &r.table}); err != nil {
		return 0, fmt.Errorf("dynamodb: describe table: %w", err)
	}
	return 1, nil
}

func sortNewestFirst(movies []movie.Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		if !movies[i].CreatedAt.Equal(movies[j].CreatedAt) {
			return movies[i].CreatedAt.After(movies[j].CreatedAt)
		}
		return movies[i].ID > movies[j].ID
	})
}

package mongo

import (
	"context"
	"fmt"
	"regexp"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

type BookRepository struct {
	col *mongo.Collection
	ids *sequence
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{
		col: db.Collection(collectionBooks),
		ids: newSequence(db, collectionBooks),
	}
}

type mongoBook struct {
	ID          int64  `bson:"_id"`
	Title       string `bson:"titulo"`
	Author      string `bson:"autor"`
	Category    string `bson:"categoria"`
	CoverRef    string `bson:"imagen_url"`
	DocumentRef string `bson:"pdf_url"`
}

func (b mongoBook) toDomain() domain.Book {
	return domain.Book{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Category:    b.Category,
		CoverRef:    b.CoverRef,
		DocumentRef: b.DocumentRef,
	}
}

func bookFilter(f domain.BookFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"titulo": re},
			bson.M{"autor": re},
			bson.M{"categoria": re},
		}
	}
	if f.Category != "" {
		filter["categoria"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(f.Category) + "$", Options: "i"}
	}
	return filter
}

func (r *BookRepository) List(ctx context.Context, f domain.BookFilter) ([]domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bookFilter(f), options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoBook
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}

	books := make([]domain.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, d.toDomain())
	}
	return books, nil
}

func (r *BookRepository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := r.col.Distinct(ctx, "categoria", bson.M{"categoria": bson.M{"$nin": bson.A{"", nil}}})
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	cats := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			cats = append(cats, s)
		}
	}
	slices.Sort(cats)
	return cats, nil
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return 0, err
	}

	doc := mongoBook{
		ID:          id,
		Title:       book.Title,
		Author:      book.Author,
		Category:    book.Category,
		CoverRef:    book.CoverRef,
		DocumentRef: book.DocumentRef,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}
	return id, nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete book: %w", err)
	}
	return res.DeletedCount > 0, nil
}

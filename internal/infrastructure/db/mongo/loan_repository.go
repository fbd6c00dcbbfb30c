package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

type LoanRepository struct {
	col *mongo.Collection
	ids *sequence
	now func() time.Time
}

func NewLoanRepository(db *mongo.Database) *LoanRepository {
	return &LoanRepository{
		col: db.Collection(collectionLoans),
		ids: newSequence(db, collectionLoans),
		now: time.Now,
	}
}

type mongoLoan struct {
	ID              int64     `bson:"_id"`
	BookID          int64     `bson:"libro_id"`
	UserID          int64     `bson:"usuario_id"`
	ReadingDuration int       `bson:"tiempo_lectura"`
	CreatedAt       time.Time `bson:"fecha_prestamo"`
}

// mongoLoanWithBook is the shape produced by the ListByUser pipeline.
type mongoLoanWithBook struct {
	ID              int64     `bson:"_id"`
	BookID          int64     `bson:"libro_id"`
	UserID          int64     `bson:"usuario_id"`
	ReadingDuration int       `bson:"tiempo_lectura"`
	CreatedAt       time.Time `bson:"fecha_prestamo"`
	Book            mongoBook `bson:"libro"`
}

func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}

	doc := mongoLoan{
		ID:              id,
		BookID:          loan.BookID,
		UserID:          loan.UserID,
		ReadingDuration: loan.ReadingDuration,
		// Mongo stores milliseconds.
		CreatedAt: r.now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}

	loan.ID = doc.ID
	loan.CreatedAt = doc.CreatedAt
	return nil
}

// ListByUser joins loans with books via $lookup. $unwind without
// preserveNullAndEmptyArrays drops loans whose book was deleted.
func (r *LoanRepository) ListByUser(ctx context.Context, userID int64) ([]domain.LoanWithBook, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"usuario_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionBooks,
			"localField":   "libro_id",
			"foreignField": "_id",
			"as":           "libro",
		}}},
		{{Key: "$unwind", Value: "$libro"}},
		{{Key: "$sort", Value: bson.D{{Key: "fecha_prestamo", Value: -1}, {Key: "_id", Value: -1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate loans: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoLoanWithBook
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode loans: %w", err)
	}

	loans := make([]domain.LoanWithBook, 0, len(docs))
	for _, d := range docs {
		loans = append(loans, domain.LoanWithBook{
			Loan: domain.Loan{
				ID:              d.ID,
				BookID:          d.BookID,
				UserID:          d.UserID,
				ReadingDuration: d.ReadingDuration,
				CreatedAt:       d.CreatedAt.UTC(),
			},
			Title:       d.Book.Title,
			Author:      d.Book.Author,
			CoverRef:    d.Book.CoverRef,
			DocumentRef: d.Book.DocumentRef,
		})
	}
	return loans, nil
}

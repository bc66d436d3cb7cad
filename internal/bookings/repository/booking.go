package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "hotelbooking/internal/bookings/errors"
	"hotelbooking/pkg/config"
	mongotx "hotelbooking/pkg/db/mongo"
	"hotelbooking/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

// BookingRepository is the booking store. Implementations must apply the inclusive
// overlap predicate in FindOverlapping and return results ordered by start date.
type BookingRepository interface {
	FindAll(ctx context.Context) ([]*model.Booking, error)
	FindOverlapping(ctx context.Context, start, end model.Date, excludeID string) ([]*model.Booking, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	Save(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
	Ping(ctx context.Context) error
}

type bookingDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	StartDate time.Time          `bson:"start_date"`
	EndDate   time.Time          `bson:"end_date"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *bookingDocument) toModel() *model.Booking {
	start, end := model.DateOf(d.StartDate.UTC()), model.DateOf(d.EndDate.UTC())
	return &model.Booking{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		StartDate: &start,
		EndDate:   &end,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type mongoBookingRepository struct {
	cfg        *config.Config
	client     *mongo.Client
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		client:     cfg.Client.Mongo,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// A SessionContext is returned unchanged with a no-op cancel, since wrapping it would
// detach the call from the session.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.find(ctx, bson.M{})
}

func (r *mongoBookingRepository) FindOverlapping(ctx context.Context, start, end model.Date, excludeID string) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter, err := overlapFilter(start, end, excludeID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter)
}

// overlapFilter matches stays sharing at least one day with [start, end], boundaries included.
func overlapFilter(start, end model.Date, excludeID string) (bson.M, error) {
	filter := bson.M{
		"start_date": bson.M{"$lte": end.Time()},
		"end_date":   bson.M{"$gte": start.Time()},
	}

	if excludeID != "" {
		objectID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, excludeID)
		}
		filter["_id"] = bson.M{"$ne": objectID}
	}

	return filter, nil
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	bookings := make([]*model.Booking, 0, len(docs))
	for i := range docs {
		bookings = append(bookings, docs[i].toModel())
	}
	return bookings, nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var doc bookingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return doc.toModel(), nil
}

// Save inserts a booking without an ID and fully replaces one that has an ID.
func (r *mongoBookingRepository) Save(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	if booking.StartDate == nil || booking.EndDate == nil {
		return nil, fmt.Errorf("cannot save booking without dates")
	}

	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := bookingDocument{
		Name:      booking.Name,
		StartDate: booking.StartDate.Time(),
		EndDate:   booking.EndDate.Time(),
		CreatedAt: booking.CreatedAt,
		UpdatedAt: now,
	}

	if booking.ID == "" {
		doc.ID = primitive.NewObjectID()
		doc.CreatedAt = now
		if _, err := r.collection.InsertOne(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to create booking: %w", err)
		}
		return doc.toModel(), nil
	}

	objectID, err := primitive.ObjectIDFromHex(booking.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, booking.ID)
	}
	doc.ID = objectID
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objectID}, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, bookingserrors.ErrNotFound
	}

	return doc.toModel(), nil
}

// DeleteByID removes a booking and reports whether one was removed. Deleting an unknown
// ID is not an error.
func (r *mongoBookingRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, fmt.Errorf("failed to delete booking: %w", err)
	}

	return result.DeletedCount > 0, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func (r *mongoBookingRepository) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.client.Ping(ctx, nil)
}

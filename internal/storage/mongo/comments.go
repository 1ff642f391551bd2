package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-photo-feed/internal/models"
	"github.com/pribylovaa/go-photo-feed/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// commentDoc — форма документа комментария в MongoDB.
type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PhotoID   string             `bson:"photo_id"`
	UserID    uuid.UUID          `bson:"user_id"`
	UserEmail string             `bson:"user_email"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d commentDoc) toModel() models.Comment {
	return models.Comment{
		ID:        d.ID.Hex(),
		PhotoID:   d.PhotoID,
		UserID:    d.UserID,
		UserEmail: d.UserEmail,
		Text:      d.Text,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// CreateComment создаёт комментарий. CreatedAt проставляется здесь.
func (m *Mongo) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	const op = "storage/mongo/CreateComment"

	doc := commentDoc{
		PhotoID:   comment.PhotoID,
		UserID:    comment.UserID,
		UserEmail: comment.UserEmail,
		Text:      comment.Text,
		CreatedAt: toMS(time.Now()),
	}

	res, err := m.comments.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	doc.ID = oid
	out := doc.toModel()
	return &out, nil
}

// CommentByID возвращает комментарий по идентификатору.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc commentDoc
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// DeleteComment удаляет комментарий.
// При отсутствии записи — storage.ErrNotFound.
func (m *Mongo) DeleteComment(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteComment"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.comments.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListCommentsByPhoto возвращает комментарии фотографии, created_at ASC, _id ASC.
func (m *Mongo) ListCommentsByPhoto(ctx context.Context, photoID string) ([]models.Comment, error) {
	const op = "storage/mongo/ListCommentsByPhoto"

	filter := bson.D{{Key: "photo_id", Value: strings.TrimSpace(photoID)}}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := m.comments.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Comment
	for cur.Next(ctx) {
		var doc commentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, doc.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Storage = (*Mongo)(nil)

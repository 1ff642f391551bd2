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
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// likeDoc — форма Like-документа в MongoDB.
// _id — составной ключ "<userID>_<photoID>": сама коллекция гарантирует
// «не более одного лайка на пару (viewer, photo)».
type likeDoc struct {
	ID        string    `bson:"_id"`
	UserID    uuid.UUID `bson:"user_id"`
	UserEmail string    `bson:"user_email"`
	PhotoID   string    `bson:"photo_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d likeDoc) toModel() models.Like {
	return models.Like{
		ID:        d.ID,
		UserID:    d.UserID,
		UserEmail: d.UserEmail,
		PhotoID:   d.PhotoID,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// LikeByID возвращает лайк по составному ключу.
// Отсутствие записи — storage.ErrNotFound.
func (m *Mongo) LikeByID(ctx context.Context, id string) (*models.Like, error) {
	const op = "storage/mongo/LikeByID"

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc likeDoc
	if err := m.likes.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// CreateLike создаёт лайк. Повторная вставка по тому же ключу — storage.ErrConflict
// (гонка check-then-act двух устройств разрешается на уровне _id).
func (m *Mongo) CreateLike(ctx context.Context, like models.Like) error {
	const op = "storage/mongo/CreateLike"

	doc := likeDoc{
		ID:        like.ID,
		UserID:    like.UserID,
		UserEmail: like.UserEmail,
		PhotoID:   like.PhotoID,
		CreatedAt: toMS(time.Now()),
	}

	if _, err := m.likes.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return fmt.Errorf("%s: insert: %w", op, err)
	}

	return nil
}

// DeleteLike удаляет лайк по составному ключу.
// При отсутствии записи — storage.ErrNotFound.
func (m *Mongo) DeleteLike(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteLike"

	res, err := m.likes.DeleteOne(ctx, bson.D{{Key: "_id", Value: strings.TrimSpace(id)}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// CountLikes возвращает число Like-документов фотографии.
// Счётчик всегда производный — никакого поля-агрегата в документах нет.
func (m *Mongo) CountLikes(ctx context.Context, photoID string) (int64, error) {
	const op = "storage/mongo/CountLikes"

	n, err := m.likes.CountDocuments(ctx, bson.D{{Key: "photo_id", Value: strings.TrimSpace(photoID)}})
	if err != nil {
		return 0, fmt.Errorf("%s: count: %w", op, err)
	}

	return n, nil
}

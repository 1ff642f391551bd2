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
)

// bookmarkDoc — форма документа закладки в MongoDB.
type bookmarkDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    uuid.UUID          `bson:"user_id"`
	URL       string             `bson:"url"`
	Source    string             `bson:"source"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d bookmarkDoc) toModel() models.Bookmark {
	return models.Bookmark{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		URL:       d.URL,
		Source:    d.Source,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// CreateBookmark создаёт закладку. CreatedAt проставляется здесь.
// Дедупликации по URL нет: повторное добавление создаёт вторую запись.
func (m *Mongo) CreateBookmark(ctx context.Context, bookmark models.Bookmark) (*models.Bookmark, error) {
	const op = "storage/mongo/CreateBookmark"

	doc := bookmarkDoc{
		UserID:    bookmark.UserID,
		URL:       bookmark.URL,
		Source:    bookmark.Source,
		CreatedAt: toMS(time.Now()),
	}

	res, err := m.bookmarks.InsertOne(ctx, doc)
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

// BookmarkByID возвращает закладку по идентификатору.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) BookmarkByID(ctx context.Context, id string) (*models.Bookmark, error) {
	const op = "storage/mongo/BookmarkByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc bookmarkDoc
	if err := m.bookmarks.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// DeleteBookmark удаляет закладку.
// При отсутствии записи — storage.ErrNotFound.
func (m *Mongo) DeleteBookmark(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteBookmark"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.bookmarks.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListBookmarksByUser возвращает закладки пользователя одиночным фильтром по user_id.
// Серверной сортировки нет — упорядочивает вызывающий слой (created_at DESC).
func (m *Mongo) ListBookmarksByUser(ctx context.Context, userID uuid.UUID) ([]models.Bookmark, error) {
	const op = "storage/mongo/ListBookmarksByUser"

	cur, err := m.bookmarks.Find(ctx, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Bookmark
	for cur.Next(ctx) {
		var doc bookmarkDoc
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

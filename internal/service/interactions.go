package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pribylovaa/go-photo-feed/pkg/log"

	"github.com/pribylovaa/go-photo-feed/internal/models"
	"github.com/pribylovaa/go-photo-feed/internal/storage"
)

// LoadInteractions — агрегированное состояние взаимодействий одной фотографии.
//
// Три подвыборки (счётчик лайков, «viewer лайкнул», список комментариев)
// выполняются конкурентно и сходятся на барьере: состояние публикуется только
// после завершения всех трёх. Ошибка любой подвыборки НЕ валит загрузку —
// значение заменяется безопасным дефолтом (0 / false / пустой список),
// а признак Defaulted взводится. Изоляция отказа — на гранулярности фотографии.
//
// viewer == nil допустим: подвыборка «viewer лайкнул» пропускается (false).
func (s *Service) LoadInteractions(ctx context.Context, viewer *models.Viewer, photoID string) (*models.Interactions, error) {
	const op = "service/interactions/LoadInteractions"

	photoID = strings.TrimSpace(photoID)
	lg := log.From(ctx).With("op", op, "photo_id", photoID)

	if photoID == "" {
		lg.Warn("invalid argument: empty photo_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var (
		wg sync.WaitGroup

		likeCount   int64
		viewerLiked bool
		comments    []models.Comment

		countErr    error
		likedErr    error
		commentsErr error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		likeCount, countErr = s.likeCount(ctx, photoID)
	}()

	go func() {
		defer wg.Done()
		if viewer == nil {
			return
		}

		_, err := s.storage.LikeByID(ctx, models.LikeID(viewer.ID, photoID))
		switch {
		case err == nil:
			viewerLiked = true
		case errors.Is(err, storage.ErrNotFound):
			viewerLiked = false
		default:
			likedErr = err
		}
	}()

	go func() {
		defer wg.Done()
		comments, commentsErr = s.storage.ListCommentsByPhoto(ctx, photoID)
	}()

	wg.Wait()

	out := &models.Interactions{
		LikeCount:   likeCount,
		ViewerLiked: viewerLiked,
		Comments:    comments,
	}

	// Деградация до дефолтов вместо отказа всей загрузки.
	if countErr != nil {
		lg.Warn("like count fetch failed, defaulting to 0", "err", countErr.Error())
		out.LikeCount = 0
		out.Defaulted = true
	}

	if likedErr != nil {
		lg.Warn("viewer-liked fetch failed, defaulting to false", "err", likedErr.Error())
		out.ViewerLiked = false
		out.Defaulted = true
	}

	if commentsErr != nil {
		lg.Warn("comments fetch failed, defaulting to empty", "err", commentsErr.Error())
		out.Comments = nil
		out.Defaulted = true
	}

	if out.Comments == nil {
		out.Comments = []models.Comment{}
	}

	return out, nil
}

// likeCount — счётчик лайков фотографии: сперва кэш, затем хранилище.
// Кэш строго вспомогательный: любая его ошибка приводит к чтению из хранилища.
func (s *Service) likeCount(ctx context.Context, photoID string) (int64, error) {
	if s.likeCache != nil {
		if n, ok, err := s.likeCache.Get(ctx, photoID); err == nil && ok {
			return n, nil
		}
	}

	n, err := s.storage.CountLikes(ctx, photoID)
	if err != nil {
		return 0, err
	}

	if s.likeCache != nil {
		// Best effort: непопадание в кэш не ошибка.
		_ = s.likeCache.Set(ctx, photoID, n, s.cfg.Cache.TTL)
	}

	return n, nil
}

// ToggleLike — поставить/снять лайк.
//
// Схема check-then-act по составному ключу "<viewerID>_<photoID>":
// есть запись -> удаляем (false), нет -> создаём (true). Транзакции нет;
// одновременный toggle с двух устройств может финишировать в любом из двух
// состояний — принятое поведение. Проигрыш гонки на вставке (ErrConflict)
// трактуется как «лайк уже стоит».
//
// Авторитетный счётчик после toggle даёт только повторный LoadInteractions:
// локальный инкремент/декремент не выполняется, счётчик — производная величина.
func (s *Service) ToggleLike(ctx context.Context, viewer *models.Viewer, photoID string) (bool, error) {
	const op = "service/interactions/ToggleLike"

	photoID = strings.TrimSpace(photoID)
	lg := log.From(ctx).With("op", op, "photo_id", photoID)

	if viewer == nil {
		lg.Warn("auth required")
		return false, fmt.Errorf("%s: %w", op, ErrAuthRequired)
	}

	if photoID == "" {
		lg.Warn("invalid argument: empty photo_id")
		return false, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	likeID := models.LikeID(viewer.ID, photoID)
	lg = lg.With("viewer_id", viewer.ID.String())

	defer s.invalidateLikeCount(ctx, photoID)

	_, err := s.storage.LikeByID(ctx, likeID)
	switch {
	case err == nil:
		// Снимаем лайк. Параллельное удаление с другого устройства — тоже «снято».
		if derr := s.storage.DeleteLike(ctx, likeID); derr != nil && !errors.Is(derr, storage.ErrNotFound) {
			lg.Error("storage error on DeleteLike", "err", derr)
			return false, fmt.Errorf("%s: %w", op, ErrInternal)
		}

		return false, nil

	case errors.Is(err, storage.ErrNotFound):
		cerr := s.storage.CreateLike(ctx, models.Like{
			ID:        likeID,
			UserID:    viewer.ID,
			UserEmail: viewer.Email,
			PhotoID:   photoID,
		})
		if cerr != nil {
			if errors.Is(cerr, storage.ErrConflict) {
				lg.Warn("concurrent like insert, treating as liked")
				return true, nil
			}

			lg.Error("storage error on CreateLike", "err", cerr)
			return false, fmt.Errorf("%s: %w", op, ErrInternal)
		}

		return true, nil

	default:
		lg.Error("storage error on LikeByID", "err", err)
		return false, fmt.Errorf("%s: %w", op, ErrInternal)
	}
}

// invalidateLikeCount сбрасывает кэшированный счётчик после мутации лайка.
func (s *Service) invalidateLikeCount(ctx context.Context, photoID string) {
	if s.likeCache == nil {
		return
	}

	if err := s.likeCache.Invalidate(ctx, photoID); err != nil {
		log.From(ctx).Warn("like count cache invalidate failed", "photo_id", photoID, "err", err.Error())
	}
}

// AddComment — добавление комментария к фотографии.
//
// Валидация:
//   - viewer обязателен;
//   - text нормализуется (TrimSpace) и не должен быть пустым — при нарушении
//     НИКАКОГО обращения к хранилищу не происходит.
//
// После успеха вызывающий перечитывает список комментариев: серверные
// порядок/метка времени не восстанавливаются локальным дописыванием.
func (s *Service) AddComment(ctx context.Context, viewer *models.Viewer, photoID string, text string) (*models.Comment, error) {
	const op = "service/interactions/AddComment"

	photoID = strings.TrimSpace(photoID)
	lg := log.From(ctx).With("op", op, "photo_id", photoID)

	if viewer == nil {
		lg.Warn("auth required")
		return nil, fmt.Errorf("%s: %w", op, ErrAuthRequired)
	}

	text = strings.TrimSpace(text)
	if photoID == "" || text == "" {
		lg.Warn("invalid argument: empty photo_id or text")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	comment, err := s.storage.CreateComment(ctx, models.Comment{
		PhotoID:   photoID,
		UserID:    viewer.ID,
		UserEmail: viewer.Email,
		Text:      text,
	})
	if err != nil {
		lg.Error("storage error on CreateComment", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return comment, nil
}

// DeleteComment — удаление комментария автором.
// Авторство проверяется по свежему чтению комментария из хранилища.
func (s *Service) DeleteComment(ctx context.Context, viewer *models.Viewer, commentID string) error {
	const op = "service/interactions/DeleteComment"

	commentID = strings.TrimSpace(commentID)
	lg := log.From(ctx).With("op", op, "comment_id", commentID)

	if viewer == nil {
		lg.Warn("auth required")
		return fmt.Errorf("%s: %w", op, ErrAuthRequired)
	}

	if commentID == "" {
		lg.Warn("invalid argument: empty comment_id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	comment, err := s.storage.CommentByID(ctx, commentID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on CommentByID", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if comment.UserID != viewer.ID {
		lg.Warn("permission denied", "author_id", comment.UserID.String(), "viewer_id", viewer.ID.String())
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if err := s.storage.DeleteComment(ctx, commentID); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found on delete")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteComment", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

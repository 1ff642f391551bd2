package models

// Interactions — агрегированное состояние взаимодействий одной фотографии
// глазами конкретного Viewer: счётчик лайков, признак «я лайкнул», комментарии.
// Состояние производное: собирается из трёх независимых выборок и нигде
// не хранится как единый документ.
//
// Defaulted=true означает, что хотя бы одна подвыборка завершилась ошибкой
// и заменена безопасным значением по умолчанию (0 / false / пустой список);
// сама загрузка при этом считается успешной.
type Interactions struct {
	LikeCount   int64
	ViewerLiked bool
	Comments    []Comment
	Defaulted   bool
}

// FeedItem — элемент ленты: фотография плюс её Interactions.
type FeedItem struct {
	Photo        Photo
	Interactions Interactions
}

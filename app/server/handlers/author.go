package handlers

import (
	"errors"
	"library-catalog/app/server/api"
	"library-catalog/app/server/middlewares"
	"library-catalog/app/server/models"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func authorInfo(author *models.Author) *api.AuthorInfoWithID {
	res := &api.AuthorInfoWithID{
		Id:        author.ID,
		Name:      author.Name,
		Bio:       author.Bio,
		CreatedAt: author.CreatedAt,
		CreatedBy: author.CreatedBy,
	}
	for _, book := range author.Books {
		res.Books = append(res.Books, api.BookSummary{
			Id:    book.ID,
			Name:  book.Name,
			Image: book.Image,
		})
	}
	return res
}

func (a *App) AuthorList(c echo.Context) error {
	rctx := c.Request().Context()

	var params api.ListParams
	if msgs := a.bind(c, &params); msgs != nil {
		return a.er(c, http.StatusBadRequest, msgs...)
	}

	var (
		authors      []models.Author
		authorsCount int64
	)

	tx, showAll, limit, err := a.paginate(a.db.WithContext(rctx).Model(&models.Author{}).Preload("Books").Order("id"), &params)
	if err != nil {
		return a.er(c, http.StatusBadRequest, err.Error())
	}
	if err := tx.Find(&authors).Error; err != nil {
		a.l.Error("failed to get author list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Author{}).Count(&authorsCount).Error; err != nil {
		a.l.Error("failed to count author", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resAuthors := []api.AuthorInfoWithID{}
	for _, author := range authors {
		resAuthors = append(resAuthors, *authorInfo(&author))
	}

	return a.ok(c, http.StatusOK, &api.ListResponse[api.AuthorInfoWithID]{
		Limit:   limit,
		PageMax: a.calcMaxPage(authorsCount, showAll, limit),
		List:    resAuthors,
	})
}

func (a *App) AuthorInfoGet(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 从数据库中获得
	var author models.Author
	if err := a.db.WithContext(rctx).Preload("Books").First(&author, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get author", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return a.ok(c, http.StatusOK, authorInfo(&author))
}

func (a *App) AuthorCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req api.AuthorCreate
	if msgs := a.bind(c, &req); msgs != nil {
		return a.er(c, http.StatusBadRequest, msgs...)
	}

	author := models.Author{
		Name:      req.Name,
		Bio:       req.Bio,
		CreatedBy: middlewares.User(c).Name,
	}

	if err := a.db.WithContext(rctx).Create(&author).Error; err != nil {
		a.l.Error("failed to create author", zap.Any("author", author), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.ok(c, http.StatusCreated, authorInfo(&author))
}

func (a *App) AuthorInfoUpdate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req api.AuthorUpdate
	if msgs := a.bind(c, &req); msgs != nil {
		return a.er(c, http.StatusBadRequest, msgs...)
	}
	if req.Id != nil && *req.Id != id {
		return a.er(c, http.StatusBadRequest, "Id in body does not match the path")
	}

	// 从数据库中获得
	var author models.Author
	if err := a.db.WithContext(rctx).First(&author, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get author", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 更新信息
	if req.Name != nil {
		author.Name = *req.Name
	}
	if req.Bio != nil {
		author.Bio = *req.Bio
	}

	if err := a.db.WithContext(rctx).Save(&author).Error; err != nil {
		a.l.Error("failed to update author", zap.Any("author", author), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.ok(c, http.StatusOK, authorInfo(&author))
}

func (a *App) AuthorDelete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 仍有书的作者不能删除
	var booksCount int64
	if err := a.db.WithContext(rctx).Model(&models.Book{}).Where("author_id = ?", id).Count(&booksCount).Error; err != nil {
		a.l.Error("failed to count books of author", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if booksCount > 0 {
		return a.er(c, http.StatusConflict, "Author still has books")
	}

	// 删除
	res := a.db.WithContext(rctx).Delete(&models.Author{}, id)
	if res.Error != nil {
		a.l.Error("failed to delete author", zap.Uint("id", id), zap.Error(res.Error))
		return a.er(c, http.StatusInternalServerError)
	}
	if res.RowsAffected == 0 {
		return a.er(c, http.StatusNotFound)
	}

	return a.ok(c, http.StatusOK, nil)
}

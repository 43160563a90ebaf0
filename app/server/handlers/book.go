package handlers

import (
	"context"
	"errors"
	"fmt"
	"library-catalog/app/server/api"
	"library-catalog/app/server/blob"
	"library-catalog/app/server/constants"
	"library-catalog/app/server/middlewares"
	"library-catalog/app/server/models"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errCoverTooLarge = errors.New("cover too large")

func bookInfo(book *models.Book) *api.BookInfoWithID {
	res := &api.BookInfoWithID{
		Id:          book.ID,
		Name:        book.Name,
		Description: book.Description,
		Image:       book.Image,
		CreatedAt:   book.CreatedAt,
		CreatedBy:   book.CreatedBy,
		AuthorId:    book.AuthorID,
		Categories:  []api.CategoryInfoWithID{},
	}
	if book.Author != nil {
		res.Author = authorInfo(book.Author)
	}
	for _, category := range book.Categories {
		res.Categories = append(res.Categories, *categoryInfo(&category))
	}
	return res
}

// bookValidate 检查作者和分类是否存在，返回需要关联的分类
func (a *App) bookValidate(ctx context.Context, authorID uint, categoryIDs []uint) ([]models.Category, error, int) {
	db := a.db.WithContext(ctx)

	// 检查 author id
	if err, statusCode := validateIDs[models.Author](db, []uint{authorID}); err != nil {
		return nil, fmt.Errorf("author: %w", err), statusCode
	}

	// 检查 category id
	if err, statusCode := validateIDs[models.Category](db, categoryIDs); err != nil {
		return nil, fmt.Errorf("category: %w", err), statusCode
	}

	categories := []models.Category{}
	if len(categoryIDs) > 0 {
		if err := db.Where("id IN ?", categoryIDs).Order("id").Find(&categories).Error; err != nil {
			return nil, fmt.Errorf("find categories: %w", err), http.StatusInternalServerError
		}
	}

	return categories, nil, http.StatusOK
}

// uploadCover 上传封面，名称为 <uuid><扩展名>
func (a *App) uploadCover(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > constants.CoverMaxSize {
		return "", errCoverTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open cover: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	return a.blob.UploadBlob(ctx, name, a.container, src, file.Header.Get(echo.HeaderContentType))
}

// deleteCover 删除封面，失败时只记录
func (a *App) deleteCover(ctx context.Context, image string) {
	name := blob.NameFromURL(image)
	if name == "" {
		return
	}
	if err := a.blob.DeleteBlob(ctx, name, a.container); err != nil {
		a.l.Error("failed to delete cover", zap.String("image", image), zap.Error(err))
	}
}

func (a *App) findBook(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := a.db.WithContext(ctx).
		Preload("Author").
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (a *App) BookList(c echo.Context) error {
	rctx := c.Request().Context()

	var params api.ListParams
	if msgs := a.bind(c, &params); msgs != nil {
		return a.er(c, http.StatusBadRequest, msgs...)
	}

	var (
		books      []models.Book
		booksCount int64
	)

	tx, showAll, limit, err := a.paginate(a.db.WithContext(rctx).
		Model(&models.Book{}).
		Preload("Author").
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id"), &params)
	if err != nil {
		return a.er(c, http.StatusBadRequest, err.Error())
	}
	if err := tx.Find(&books).Error; err != nil {
		a.l.Error("failed to get book list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Book{}).Count(&booksCount).Error; err != nil {
		a.l.Error("failed to count book", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resBooks := []api.BookInfoWithID{}
	for _, book := range books {
		resBooks = append(resBooks, *bookInfo(&book))
	}

	return a.ok(c, http.StatusOK, &api.ListResponse[api.BookInfoWithID]{
		Limit:   limit,
		PageMax: a.calcMaxPage(booksCount, showAll, limit),
		List:    resBooks,
	})
}

func (a *App) BookInfoGet(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	book, err := a.findBook(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get book", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return a.ok(c, http.StatusOK, bookInfo(book))
}

func (a *App) BookCategories(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	book, err := a.findBook(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get book", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return a.ok(c, http.StatusOK, bookInfo(book).Categories)
}

func (a *App) BookCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定表单
	var req api.BookForm
	if msgs := a.bind(c, &req); msgs != nil {
		return a.er(c, http.StatusBadRequest, msgs...)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return a.er(c, http.StatusBadRequest, "file is required")
	}

	// 验证
	categories, err, statusCode := a.bookValidate(rctx, req.AuthorId, uniqueIDs(req.CategoryIds))
	if err != nil {
		a.l.Debug("failed to validate book", zap.Error(err))
		if statusCode == http.StatusBadRequest {
			return a.er(c, statusCode, "Author or category does not exist")
		}
		return a.er(c, statusCode)
	}

	// 上传封面
	image, err := a.uploadCover(rctx, file)
	if err != nil {
		if errors.Is(err, errCoverTooLarge) {
			return a.er(c, http.StatusBadRequest, "Cover image is too large")
		}
		a.l.Error("failed to upload cover", zap.String("filename", file.Filename), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	book := models.Book{
		Name:        req.Name,
		Description: req.Description,
		Image:       image,
		CreatedBy:   middlewares.User(c).Name,
		AuthorID:    req.AuthorId,
		Categories:  categories,
	}

	// 分类已存在，只写关联表
	if err := a.db.WithContext(rctx).Omit("Categories.*").Create(&book).Error; err != nil {
		a.l.Error("failed to create book", zap.Any("book", book), zap.Error(err))
		a.deleteCover(rctx, image)
		return a.er(c, http.StatusInternalServerError)
	}

	created, err := a.findBook(rctx, book.ID)
	if err != nil {
		a.l.Error("failed to reload book", zap.Uint("id", book.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.ok(c, http.StatusCreated, bookInfo(created))
}

func (a *App) BookInfoUpdate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 绑定表单
	var req api.BookForm
	if msgs := a.bind(c, &req); msgs != nil {
		return a.er(c, http.StatusBadRequest, msgs...)
	}

	// 从数据库中获得
	var book models.Book
	if err := a.db.WithContext(rctx).First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get book", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 验证
	categories, err, statusCode := a.bookValidate(rctx, req.AuthorId, uniqueIDs(req.CategoryIds))
	if err != nil {
		a.l.Debug("failed to validate book", zap.Error(err))
		if statusCode == http.StatusBadRequest {
			return a.er(c, statusCode, "Author or category does not exist")
		}
		return a.er(c, statusCode)
	}

	// 新封面是可选的
	oldImage := ""
	if file, err := c.FormFile("file"); err == nil && file.Size > 0 {
		image, err := a.uploadCover(rctx, file)
		if err != nil {
			if errors.Is(err, errCoverTooLarge) {
				return a.er(c, http.StatusBadRequest, "Cover image is too large")
			}
			a.l.Error("failed to upload cover", zap.String("filename", file.Filename), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
		oldImage = book.Image
		book.Image = image
	}

	// 更新信息
	book.Name = req.Name
	book.Description = req.Description
	book.AuthorID = req.AuthorId
	book.CreatedBy = middlewares.User(c).Name

	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&book).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return tx.Model(&book).Association("Categories").Clear()
		}
		return tx.Model(&book).Association("Categories").Replace(categories)
	}); err != nil {
		a.l.Error("failed to update book", zap.Uint("id", id), zap.Error(err))
		if oldImage != "" {
			// 回退新上传的封面
			a.deleteCover(rctx, book.Image)
		}
		return a.er(c, http.StatusInternalServerError)
	}

	// 替换成功后再删除旧封面
	if oldImage != "" {
		a.deleteCover(rctx, oldImage)
	}

	updated, err := a.findBook(rctx, book.ID)
	if err != nil {
		a.l.Error("failed to reload book", zap.Uint("id", book.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.ok(c, http.StatusOK, bookInfo(updated))
}

func (a *App) BookDelete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var book models.Book
	if err := a.db.WithContext(rctx).First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get book", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 先删除封面
	if name := blob.NameFromURL(book.Image); name != "" {
		if err := a.blob.DeleteBlob(rctx, name, a.container); err != nil {
			a.l.Error("failed to delete cover", zap.Uint("id", id), zap.String("image", book.Image), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 删除
	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&book).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&book).Error
	}); err != nil {
		a.l.Error("failed to delete book", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.ok(c, http.StatusOK, nil)
}

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

func categoryInfo(category *models.Category) *api.CategoryInfoWithID {
	return &api.CategoryInfoWithID{
		Id:        category.ID,
		Name:      category.Name,
		Priority:  category.Priority,
		CreatedAt: category.CreatedAt,
		CreatedBy: category.CreatedBy,
	}
}

func (a *App) CategoryList(c echo.Context) error {
	rctx := c.Request().Context()

	var params api.ListParams
	if msgs := a.bind(c, &params); msgs != nil {
		return a.er(c, http.StatusBadRequest, msgs...)
	}

	var (
		categories      []models.Category
		categoriesCount int64
	)

	tx, showAll, limit, err := a.paginate(a.db.WithContext(rctx).Model(&models.Category{}).Order("id"), &params)
	if err != nil {
		return a.er(c, http.StatusBadRequest, err.Error())
	}
	if err := tx.Find(&categories).Error; err != nil {
		a.l.Error("failed to get category list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Category{}).Count(&categoriesCount).Error; err != nil {
		a.l.Error("failed to count category", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resCategories := []api.CategoryInfoWithID{}
	for _, category := range categories {
		resCategories = append(resCategories, *categoryInfo(&category))
	}

	return a.ok(c, http.StatusOK, &api.ListResponse[api.CategoryInfoWithID]{
		Limit:   limit,
		PageMax: a.calcMaxPage(categoriesCount, showAll, limit),
		List:    resCategories,
	})
}

func (a *App) CategoryInfoGet(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 从数据库中获得
	var category models.Category
	if err := a.db.WithContext(rctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get category", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return a.ok(c, http.StatusOK, categoryInfo(&category))
}

func (a *App) CategoryCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req api.CategoryCreate
	if msgs := a.bind(c, &req); msgs != nil {
		return a.er(c, http.StatusBadRequest, msgs...)
	}

	category := models.Category{
		Name:      req.Name,
		Priority:  req.Priority,
		CreatedBy: middlewares.User(c).Name,
	}

	if err := a.db.WithContext(rctx).Create(&category).Error; err != nil {
		a.l.Error("failed to create category", zap.Any("category", category), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.ok(c, http.StatusCreated, categoryInfo(&category))
}

func (a *App) CategoryInfoUpdate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req api.CategoryUpdate
	if msgs := a.bind(c, &req); msgs != nil {
		return a.er(c, http.StatusBadRequest, msgs...)
	}
	if req.Id != nil && *req.Id != id {
		return a.er(c, http.StatusBadRequest, "Id in body does not match the path")
	}

	// 从数据库中获得
	var category models.Category
	if err := a.db.WithContext(rctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get category", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 更新信息
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Priority != nil {
		category.Priority = *req.Priority
	}

	if err := a.db.WithContext(rctx).Save(&category).Error; err != nil {
		a.l.Error("failed to update category", zap.Any("category", category), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.ok(c, http.StatusOK, categoryInfo(&category))
}

func (a *App) CategoryDelete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var category models.Category
	if err := a.db.WithContext(rctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		} else {
			a.l.Error("failed to get category", zap.Uint("id", id), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 先解除与书的关联再删除
	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&category).Association("Books").Clear(); err != nil {
			return err
		}
		return tx.Delete(&category).Error
	}); err != nil {
		a.l.Error("failed to delete category", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return a.ok(c, http.StatusOK, nil)
}

package catalog

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/nutrilog-backend/internal/domain"
	"github.com/yungbote/nutrilog-backend/internal/normalization"
	"github.com/yungbote/nutrilog-backend/internal/pkg/dbctx"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

type FoodRepo interface {
	Create(dbc dbctx.Context, foods []*types.FoodRecord) ([]*types.FoodRecord, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.FoodRecord, error)
	List(dbc dbctx.Context) ([]*types.FoodRecord, error)
	FindByNameOrBrand(dbc dbctx.Context, query string) ([]*types.FoodRecord, error)
	FindByBarcode(dbc dbctx.Context, barcode string) (*types.FoodRecord, error)
	FindByNameAndBrand(dbc dbctx.Context, name string, brand *string) (*types.FoodRecord, error)
	BarcodeTakenByOther(dbc dbctx.Context, barcode string, excludeID uuid.UUID) (bool, error)
	Save(dbc dbctx.Context, food *types.FoodRecord) error
	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
	CountMealLineRefs(dbc dbctx.Context, foodID uuid.UUID) (int64, error)
}

type foodRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFoodRepo(db *gorm.DB, baseLog *logger.Logger) FoodRepo {
	return &foodRepo{
		db:  db,
		log: baseLog.With("repo", "FoodRepo"),
	}
}

func (r *foodRepo) Create(dbc dbctx.Context, foods []*types.FoodRecord) ([]*types.FoodRecord, error) {
	if len(foods) == 0 {
		return []*types.FoodRecord{}, nil
	}
	if err := dbc.Conn(r.db).Create(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *foodRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.FoodRecord, error) {
	var food types.FoodRecord
	err := dbc.Conn(r.db).Where("id = ?", id).First(&food).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepo) List(dbc dbctx.Context) ([]*types.FoodRecord, error) {
	var out []*types.FoodRecord
	if err := dbc.Conn(r.db).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByNameOrBrand matches query as a case-insensitive substring of name or brand.
func (r *foodRepo) FindByNameOrBrand(dbc dbctx.Context, query string) ([]*types.FoodRecord, error) {
	var out []*types.FoodRecord
	pattern := normalization.LikePattern(query)
	if err := dbc.Conn(r.db).
		Where(`name_folded LIKE ? ESCAPE '\' OR brand_folded LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *foodRepo) FindByBarcode(dbc dbctx.Context, barcode string) (*types.FoodRecord, error) {
	var food types.FoodRecord
	err := dbc.Conn(r.db).Where("barcode = ?", barcode).First(&food).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}

// FindByNameAndBrand is an exact match; a nil brand only matches foods without one.
func (r *foodRepo) FindByNameAndBrand(dbc dbctx.Context, name string, brand *string) (*types.FoodRecord, error) {
	q := dbc.Conn(r.db).Where("name = ?", name)
	if brand == nil {
		q = q.Where("brand IS NULL")
	} else {
		q = q.Where("brand = ?", *brand)
	}
	var food types.FoodRecord
	err := q.Order("created_at ASC").First(&food).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepo) BarcodeTakenByOther(dbc dbctx.Context, barcode string, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := dbc.Conn(r.db).
		Model(&types.FoodRecord{}).
		Where("barcode = ? AND id <> ?", barcode, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *foodRepo) Save(dbc dbctx.Context, food *types.FoodRecord) error {
	return dbc.Conn(r.db).Save(food).Error
}

func (r *foodRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	res := dbc.Conn(r.db).Where("id = ?", id).Delete(&types.FoodRecord{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountMealLineRefs counts meal lines that point at the food.
func (r *foodRepo) CountMealLineRefs(dbc dbctx.Context, foodID uuid.UUID) (int64, error) {
	var count int64
	if err := dbc.Conn(r.db).
		Model(&types.MealLine{}).
		Where("food_id = ?", foodID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

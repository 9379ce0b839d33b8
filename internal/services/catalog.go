package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/nutrilog-backend/internal/data/repos"
	types "github.com/yungbote/nutrilog-backend/internal/domain"
	"github.com/yungbote/nutrilog-backend/internal/normalization"
	"github.com/yungbote/nutrilog-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/nutrilog-backend/internal/pkg/errors"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
	"github.com/yungbote/nutrilog-backend/internal/pkg/validation"
)

// CatalogService is the local food catalog.
type CatalogService interface {
	FindByNameOrBrand(ctx context.Context, text string) (*types.FoodRecord, error)
	FindByBarcode(ctx context.Context, code string) (*types.FoodRecord, error)
	List(ctx context.Context) ([]*types.FoodRecord, error)
	Create(ctx context.Context, in types.FoodInput) (*types.FoodRecord, error)
	Update(ctx context.Context, id uuid.UUID, in types.FoodInput) (*types.FoodRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Promote returns the food with the exact same name and brand, creating it when absent.
	Promote(ctx context.Context, in types.FoodInput) (*types.FoodRecord, error)
	// PromoteTx is Promote inside the caller's transaction.
	PromoteTx(dbc dbctx.Context, in types.FoodInput) (*types.FoodRecord, error)
}

type catalogService struct {
	db       *gorm.DB
	log      *logger.Logger
	foodRepo repos.FoodRepo
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, foodRepo repos.FoodRepo) CatalogService {
	return &catalogService{
		db:       db,
		log:      log.With("service", "CatalogService"),
		foodRepo: foodRepo,
	}
}

// NormalizeFoodInput trims text fields and maps blank optionals to nil.
func NormalizeFoodInput(in types.FoodInput) types.FoodInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Brand = normalization.OptionalText(in.Brand)
	in.Image = normalization.OptionalText(in.Image)
	in.Barcode = normalization.OptionalText(in.Barcode)
	return in
}

func validFoodInput(in types.FoodInput) (types.FoodInput, error) {
	in = NormalizeFoodInput(in)
	if err := validation.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}

func applyFoodInput(f *types.FoodRecord, in types.FoodInput) {
	f.Name = in.Name
	f.Brand = in.Brand
	f.Image = in.Image
	f.Barcode = in.Barcode
	f.Calories = in.Calories
	f.Proteins = in.Proteins
	f.Carbs = in.Carbs
	f.Fats = in.Fats
}

func (s *catalogService) FindByNameOrBrand(ctx context.Context, text string) (*types.FoodRecord, error) {
	if normalization.Query(text) == "" {
		return nil, nil
	}
	found, err := s.foodRepo.FindByNameOrBrand(dbctx.Context{Ctx: ctx}, text)
	if err != nil {
		return nil, fmt.Errorf("find food by name or brand: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (s *catalogService) FindByBarcode(ctx context.Context, code string) (*types.FoodRecord, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	food, err := s.foodRepo.FindByBarcode(dbctx.Context{Ctx: ctx}, code)
	if err != nil {
		return nil, fmt.Errorf("find food by barcode: %w", err)
	}
	return food, nil
}

func (s *catalogService) List(ctx context.Context) ([]*types.FoodRecord, error) {
	foods, err := s.foodRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return foods, nil
}

func (s *catalogService) Create(ctx context.Context, in types.FoodInput) (*types.FoodRecord, error) {
	in, err := validFoodInput(in)
	if err != nil {
		return nil, err
	}
	var out *types.FoodRecord
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.create(dbctx.Context{Ctx: ctx, Tx: tx}, in)
		out = created
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Food created", "food_id", out.ID)
	return out, nil
}

func (s *catalogService) create(dbc dbctx.Context, in types.FoodInput) (*types.FoodRecord, error) {
	if in.Barcode != nil {
		taken, err := s.foodRepo.BarcodeTakenByOther(dbc, *in.Barcode, uuid.Nil)
		if err != nil {
			return nil, fmt.Errorf("check barcode: %w", err)
		}
		if taken {
			return nil, apperr.NewConflict("barcode already assigned to another food")
		}
	}
	food := &types.FoodRecord{}
	applyFoodInput(food, in)
	if _, err := s.foodRepo.Create(dbc, []*types.FoodRecord{food}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.NewConflict("barcode already assigned to another food")
		}
		return nil, fmt.Errorf("create food: %w", err)
	}
	return food, nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, in types.FoodInput) (*types.FoodRecord, error) {
	in, err := validFoodInput(in)
	if err != nil {
		return nil, err
	}
	var out *types.FoodRecord
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		food, err := s.foodRepo.GetByID(dbc, id)
		if err != nil {
			return fmt.Errorf("load food: %w", err)
		}
		if food == nil {
			return apperr.NotFound("food")
		}
		if in.Barcode != nil {
			taken, err := s.foodRepo.BarcodeTakenByOther(dbc, *in.Barcode, id)
			if err != nil {
				return fmt.Errorf("check barcode: %w", err)
			}
			if taken {
				return apperr.NewConflict("barcode already assigned to another food")
			}
		}
		applyFoodInput(food, in)
		if err := s.foodRepo.Save(dbc, food); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.NewConflict("barcode already assigned to another food")
			}
			return fmt.Errorf("save food: %w", err)
		}
		out = food
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete refuses while any meal line still references the food.
func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		refs, err := s.foodRepo.CountMealLineRefs(dbc, id)
		if err != nil {
			return fmt.Errorf("count meal references: %w", err)
		}
		if refs > 0 {
			return apperr.NewConflict("food is used in meals")
		}
		deleted, err := s.foodRepo.Delete(dbc, id)
		if err != nil {
			return fmt.Errorf("delete food: %w", err)
		}
		if !deleted {
			return apperr.NotFound("food")
		}
		return nil
	})
}

func (s *catalogService) Promote(ctx context.Context, in types.FoodInput) (*types.FoodRecord, error) {
	var out *types.FoodRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		food, err := s.PromoteTx(dbctx.Context{Ctx: ctx, Tx: tx}, in)
		out = food
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *catalogService) PromoteTx(dbc dbctx.Context, in types.FoodInput) (*types.FoodRecord, error) {
	in, err := validFoodInput(in)
	if err != nil {
		return nil, err
	}
	existing, err := s.foodRepo.FindByNameAndBrand(dbc, in.Name, in.Brand)
	if err != nil {
		return nil, fmt.Errorf("find food by name and brand: %w", err)
	}
	if existing != nil {
		return existing, nil
	}
	created, err := s.create(dbc, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("Food promoted into catalog", "food_id", created.ID)
	return created, nil
}

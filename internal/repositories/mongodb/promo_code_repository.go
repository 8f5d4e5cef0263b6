package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/repositories/interfaces"
	"github.com/creat233/idfinder-sub001/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type promoCodeRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewPromoCodeRepository(db *mongo.Database, cache CacheService) interfaces.PromoCodeRepository {
	return &promoCodeRepository{
		collection: db.Collection("promo_codes"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *promoCodeRepository) Create(ctx context.Context, code *models.PromoCode) error {
	code.ID = primitive.NewObjectID()
	code.CreatedAt = time.Now()
	code.UpdatedAt = time.Now()

	// Codes are stored in canonical uppercase form
	code.Code = utils.CanonicalPromoCode(code.Code)

	_, err := r.collection.InsertOne(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to create promo code: %w", err)
	}

	r.cachePromoCode(ctx, code)

	return nil
}

func (r *promoCodeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PromoCode, error) {
	var code models.PromoCode
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}

	return &code, nil
}

func (r *promoCodeRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	if code, exists := updates["code"]; exists {
		if codeStr, ok := code.(string); ok {
			updates["code"] = utils.CanonicalPromoCode(codeStr)
		}
	}

	// The cache is keyed by code, not by ID, so the document is loaded
	// first to learn which key to drop.
	var current models.PromoCode
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&current); err != nil {
		if err == mongo.ErrNoDocuments {
			return interfaces.ErrNotFound
		}
		return fmt.Errorf("failed to load promo code for update: %w", err)
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update promo code: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidatePromoCodeCache(ctx, current.Code)
	if newCode, ok := updates["code"].(string); ok && newCode != current.Code {
		r.invalidatePromoCodeCache(ctx, newCode)
	}

	return nil
}

// Code operations
func (r *promoCodeRepository) GetByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	code = utils.CanonicalPromoCode(code)

	cacheKey := promoCodeCacheKey(code)
	if r.cache != nil {
		var cached models.PromoCode
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var promoCode models.PromoCode
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&promoCode)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promo code by code: %w", err)
	}

	if r.cache != nil && promoCode.Usable(time.Now()) {
		r.cache.Set(ctx, cacheKey, promoCode, utils.PromoCodeCacheTTL)
	}

	return &promoCode, nil
}

func (r *promoCodeRepository) FindValid(ctx context.Context, code string, now time.Time) (*models.PromoCode, error) {
	code = utils.CanonicalPromoCode(code)

	// The validity gate is part of the filter, so a code that is flipped
	// inactive between a caller's dry-run validation and its use cannot be
	// consumed. This reads straight from the store, never the cache.
	filter := bson.M{
		"code":       code,
		"is_active":  true,
		"is_paid":    true,
		"expires_at": bson.M{"$gt": now},
	}

	var promoCode models.PromoCode
	err := r.collection.FindOne(ctx, filter).Decode(&promoCode)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find valid promo code: %w", err)
	}

	return &promoCode, nil
}

// Owner operations
func (r *promoCodeRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoCode, int64, error) {
	filter := bson.M{"owner_id": ownerID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count promo codes: %w", err)
	}

	opts := params.GetSortOptions()
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find promo codes: %w", err)
	}
	defer cursor.Close(ctx)

	var codes []*models.PromoCode
	for cursor.Next(ctx) {
		var code models.PromoCode
		if err := cursor.Decode(&code); err != nil {
			return nil, 0, fmt.Errorf("failed to decode promo code: %w", err)
		}
		codes = append(codes, &code)
	}

	return codes, total, nil
}

// Maintenance
func (r *promoCodeRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.collection.UpdateMany(
		ctx,
		bson.M{
			"is_active":  true,
			"expires_at": bson.M{"$lt": now},
		},
		bson.M{"$set": bson.M{
			"is_active":  false,
			"updated_at": now,
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired promo codes: %w", err)
	}

	return result.ModifiedCount, nil
}

// Cache operations
func promoCodeCacheKey(code string) string {
	return fmt.Sprintf("promo_code_%s", code)
}

func (r *promoCodeRepository) cachePromoCode(ctx context.Context, code *models.PromoCode) {
	if r.cache != nil && code.Usable(time.Now()) {
		r.cache.Set(ctx, promoCodeCacheKey(code.Code), code, utils.PromoCodeCacheTTL)
	}
}

func (r *promoCodeRepository) invalidatePromoCodeCache(ctx context.Context, code string) {
	if r.cache != nil {
		r.cache.Delete(ctx, promoCodeCacheKey(code))
	}
}

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

type promoUsageRepository struct {
	collection *mongo.Collection
}

func NewPromoUsageRepository(db *mongo.Database) interfaces.PromoUsageRepository {
	return &promoUsageRepository{
		collection: db.Collection("promo_usages"),
	}
}

func (r *promoUsageRepository) Create(ctx context.Context, usage *models.PromoUsage) error {
	usage.ID = primitive.NewObjectID()
	if usage.UsedAt.IsZero() {
		usage.UsedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, usage)
	if err != nil {
		return fmt.Errorf("failed to create promo usage: %w", err)
	}

	return nil
}

func (r *promoUsageRepository) GetByItem(ctx context.Context, itemID primitive.ObjectID) (*models.PromoUsage, error) {
	var usage models.PromoUsage
	err := r.collection.FindOne(ctx, bson.M{"item_id": itemID}).Decode(&usage)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promo usage by item: %w", err)
	}

	return &usage, nil
}

func (r *promoUsageRepository) GetByPromoCode(ctx context.Context, promoCodeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PromoUsage, int64, error) {
	filter := bson.M{"promo_code_id": promoCodeID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count promo usages: %w", err)
	}

	opts := params.GetSortOptions()
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find promo usages: %w", err)
	}
	defer cursor.Close(ctx)

	var usages []*models.PromoUsage
	for cursor.Next(ctx) {
		var usage models.PromoUsage
		if err := cursor.Decode(&usage); err != nil {
			return nil, 0, fmt.Errorf("failed to decode promo usage: %w", err)
		}
		usages = append(usages, &usage)
	}

	return usages, total, nil
}

func (r *promoUsageRepository) CountByPromoCode(ctx context.Context, promoCodeID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"promo_code_id": promoCodeID})
	if err != nil {
		return 0, fmt.Errorf("failed to count promo usages: %w", err)
	}
	return count, nil
}

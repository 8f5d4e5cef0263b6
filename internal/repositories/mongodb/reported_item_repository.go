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

type reportedItemRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewReportedItemRepository(db *mongo.Database, cache CacheService) interfaces.ReportedItemRepository {
	return &reportedItemRepository{
		collection: db.Collection("reported_items"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *reportedItemRepository) Create(ctx context.Context, item *models.ReportedItem) error {
	item.ID = primitive.NewObjectID()
	item.Status = models.ItemStatusReported
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create reported item: %w", err)
	}

	return nil
}

func (r *reportedItemRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReportedItem, error) {
	var item models.ReportedItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reported item: %w", err)
	}

	return &item, nil
}

func (r *reportedItemRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update reported item: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

// Listing
func (r *reportedItemRepository) GetByReporter(ctx context.Context, reporterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReportedItem, int64, error) {
	filter := bson.M{"reporter_id": reporterID}
	return r.findItemsWithFilter(ctx, filter, params)
}

func (r *reportedItemRepository) GetByStatus(ctx context.Context, status models.ItemStatus, params *utils.PaginationParams) ([]*models.ReportedItem, int64, error) {
	filter := bson.M{"status": status}
	return r.findItemsWithFilter(ctx, filter, params)
}

func (r *reportedItemRepository) FindByCardNumber(ctx context.Context, cardNumber string) ([]*models.ReportedItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"card_number": cardNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to find items by card number: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*models.ReportedItem
	for cursor.Next(ctx) {
		var item models.ReportedItem
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("failed to decode reported item: %w", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

// State transitions
func (r *reportedItemRepository) MarkRecoveryRequested(ctx context.Context, id primitive.ObjectID, recovery *models.RecoveryInfo, price *models.Price, finalPrice float64, description string) error {
	// Single conditional update: item data and status move together, and
	// the status gate rejects a second submission for the same item.
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.ItemStatusReported},
		bson.M{"$set": bson.M{
			"status":          models.ItemStatusRecoveryRequested,
			"recovery":        recovery,
			"base_fee":        price.BaseFee,
			"final_price":     finalPrice,
			"currency":        price.Currency,
			"currency_symbol": price.CurrencySymbol,
			"description":     description,
			"updated_at":      time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark recovery requested: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrPreconditionFailed
	}

	return nil
}

func (r *reportedItemRepository) MarkRecovered(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.ItemStatusRecoveryRequested},
		bson.M{"$set": bson.M{
			"status":       models.ItemStatusRecovered,
			"recovered_at": now,
			"updated_at":   now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark recovered: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrPreconditionFailed
	}

	return nil
}

// Counters
func (r *reportedItemRepository) CountByStatus(ctx context.Context, status models.ItemStatus) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count items by status: %w", err)
	}
	return count, nil
}

// Helper methods
func (r *reportedItemRepository) findItemsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.ReportedItem, int64, error) {
	if params.Search != "" {
		searchFields := []string{"card_number", "found_location", "description"}
		searchFilter := params.GetSearchFilter(searchFields)
		if len(searchFilter) > 0 {
			filter = bson.M{
				"$and": []bson.M{filter, searchFilter},
			}
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reported items: %w", err)
	}

	opts := params.GetSortOptions()
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find reported items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*models.ReportedItem
	for cursor.Next(ctx) {
		var item models.ReportedItem
		if err := cursor.Decode(&item); err != nil {
			return nil, 0, fmt.Errorf("failed to decode reported item: %w", err)
		}
		items = append(items, &item)
	}

	return items, total, nil
}

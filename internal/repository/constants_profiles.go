package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrProfileConflict is returned when a concurrent writer activated another profile first.
var ErrProfileConflict = errors.New("another constants profile was activated concurrently")

// ConstantsProfile is a versioned set of global calculation constants.
// Exactly one profile is active at a time; older versions are kept as history.
type ConstantsProfile struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GallonsPerCubicFoot float64            `bson:"gallons_per_cubic_foot" json:"gallons_per_cubic_foot"`
	UnitsPerLivingRatio float64            `bson:"units_per_living_ratio" json:"units_per_living_ratio"`
	GPMPerUnitFactor    float64            `bson:"gpm_per_unit_factor" json:"gpm_per_unit_factor"`
	Active              bool               `bson:"active" json:"active"`
	Version             int                `bson:"version" json:"version"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
	CreatedBy           string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
}

// ConstantsValues are the writable fields of a profile.
type ConstantsValues struct {
	GallonsPerCubicFoot float64
	UnitsPerLivingRatio float64
	GPMPerUnitFactor    float64
}

// ConstantsProfilesRepository stores constants profiles in MongoDB.
type ConstantsProfilesRepository struct {
	collection *mongo.Collection
}

// NewConstantsProfilesRepository creates a new constants profiles repository.
func NewConstantsProfilesRepository(db *MongoDB) *ConstantsProfilesRepository {
	return &ConstantsProfilesRepository{
		collection: db.ConstantsProfiles,
	}
}

// GetActive returns the active profile, or nil when none exists.
// If a writer failed between deactivation and activation, the newest profile is used.
func (r *ConstantsProfilesRepository) GetActive(ctx context.Context) (*ConstantsProfile, error) {
	profile, err := r.findActive(ctx)
	if err != nil || profile != nil {
		return profile, err
	}

	var latest ConstantsProfile
	err = r.collection.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})).Decode(&latest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &latest, nil
}

func (r *ConstantsProfilesRepository) findActive(ctx context.Context) (*ConstantsProfile, error) {
	var profile ConstantsProfile
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create stores values as the new active profile with the next version number.
//
// The profile is inserted inactive under a unique version, so a failed insert
// leaves the previous profile active. Activation then deactivates every older
// profile and flips this one on. When a newer profile wins activation first,
// the inserted profile is removed and ErrProfileConflict is returned.
func (r *ConstantsProfilesRepository) Create(ctx context.Context, values ConstantsValues, createdBy string) (*ConstantsProfile, error) {
	profile, err := r.insertNextVersion(ctx, values, createdBy)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		err = r.activate(ctx, profile)
		if err == nil {
			profile.Active = true
			return profile, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, err
		}

		current, err := r.findActive(ctx)
		if err != nil {
			return nil, err
		}
		if current != nil && current.Version > profile.Version {
			_, _ = r.collection.DeleteOne(ctx, bson.M{"_id": profile.ID})
			return nil, ErrProfileConflict
		}
	}

	_, _ = r.collection.DeleteOne(ctx, bson.M{"_id": profile.ID})
	return nil, ErrProfileConflict
}

// maxCreateAttempts bounds version and activation retries under contention.
const maxCreateAttempts = 5

func (r *ConstantsProfilesRepository) insertNextVersion(ctx context.Context, values ConstantsValues, createdBy string) (*ConstantsProfile, error) {
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		version, err := r.latestVersion(ctx)
		if err != nil {
			return nil, err
		}

		t := time.Now().UTC()
		profile := &ConstantsProfile{
			ID:                  primitive.NewObjectID(),
			GallonsPerCubicFoot: values.GallonsPerCubicFoot,
			UnitsPerLivingRatio: values.UnitsPerLivingRatio,
			GPMPerUnitFactor:    values.GPMPerUnitFactor,
			Version:             version + 1,
			CreatedAt:           t,
			UpdatedAt:           t,
			CreatedBy:           createdBy,
		}

		_, err = r.collection.InsertOne(ctx, profile)
		if err == nil {
			return profile, nil
		}
		// Another writer took this version number.
		if !mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
	}
	return nil, ErrProfileConflict
}

func (r *ConstantsProfilesRepository) activate(ctx context.Context, profile *ConstantsProfile) error {
	t := time.Now().UTC()
	_, err := r.collection.UpdateMany(
		ctx,
		bson.M{"active": true, "version": bson.M{"$lt": profile.Version}},
		bson.M{"$set": bson.M{"active": false, "updated_at": t}},
	)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(
		ctx,
		bson.M{"_id": profile.ID},
		bson.M{"$set": bson.M{"active": true, "updated_at": t}},
	)
	if err == nil {
		profile.UpdatedAt = t
	}
	return err
}

// List returns profiles newest first. limit <= 0 returns all.
func (r *ConstantsProfilesRepository) List(ctx context.Context, limit int) ([]ConstantsProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	profiles := []ConstantsProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ConstantsProfilesRepository) latestVersion(ctx context.Context) (int, error) {
	var latest ConstantsProfile
	err := r.collection.FindOne(
		ctx,
		bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}}).SetProjection(bson.M{"version": 1}),
	).Decode(&latest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Version, nil
}

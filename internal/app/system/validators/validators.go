// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
//
// The schemas guard the invariants the API also enforces: slug shape, the
// status enum, and the en/ar locale pair on every content document. Defense
// in depth for writes that bypass the API (migrations, shell edits).
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Content collections
	ensure("blogs", blogsSchema())
	ensure("pages", pagesSchema())
	ensure("products", productsSchema())
	ensure("contact_messages", contactMessagesSchema())
	ensure("rate_limits", nil)

	// Singleton settings collections; shapes vary per resource and the API is
	// the only writer, so no schema beyond existence.
	ensure("theme_settings", nil)
	ensure("hero_settings", nil)
	ensure("story_settings", nil)
	ensure("vision_settings", nil)
	ensure("values_settings", nil)
	ensure("services_settings", nil)
	ensure("clients_settings", nil)
	ensure("contact_info", nil)
	ensure("site_seo", nil)
	ensure("navigation", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

// localeContentSchema is the shape shared by the en/ar halves of every
// content document: a title plus an ordered section list.
func localeContentSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"required": bson.A{"title"},
		"properties": bson.M{
			"title":    bson.M{"bsonType": "string"},
			"sections": bson.M{"bsonType": bson.A{"array", "null"}},
		},
	}
}

func blogsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"slug", "status", "en", "ar"},
			"properties": bson.M{
				"slug":   bson.M{"bsonType": "string", "pattern": "^[a-z0-9-]+$"},
				"status": bson.M{"enum": bson.A{"draft", "published"}},
				"en":     localeContentSchema(),
				"ar":     localeContentSchema(),
			},
		},
	}
}

func pagesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"slug", "status", "en", "ar"},
			"properties": bson.M{
				"slug":   bson.M{"bsonType": "string", "pattern": "^/"},
				"status": bson.M{"enum": bson.A{"draft", "published"}},
				"en":     localeContentSchema(),
				"ar":     localeContentSchema(),
			},
		},
	}
}

func productsSchema() bson.M {
	localeSchema := bson.M{
		"bsonType": "object",
		"required": bson.A{"name"},
		"properties": bson.M{
			"name":     bson.M{"bsonType": "string"},
			"summary":  bson.M{"bsonType": bson.A{"string", "null"}},
			"sections": bson.M{"bsonType": bson.A{"array", "null"}},
		},
	}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"slug", "status", "en", "ar"},
			"properties": bson.M{
				"slug":     bson.M{"bsonType": "string", "pattern": "^[a-z0-9-]+$"},
				"status":   bson.M{"enum": bson.A{"draft", "published"}},
				"featured": bson.M{"bsonType": "bool"},
				"in_stock": bson.M{"bsonType": "bool"},
				"en":       localeSchema,
				"ar":       localeSchema,
			},
		},
	}
}

func contactMessagesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"reference", "name", "email", "body"},
			"properties": bson.M{
				"reference": bson.M{"bsonType": "string", "minLength": 1},
				"name":      bson.M{"bsonType": "string", "minLength": 1},
				"email":     bson.M{"bsonType": "string", "minLength": 3},
				"body":      bson.M{"bsonType": "string", "minLength": 1},
				"seen":      bson.M{"bsonType": "bool"},
				"resolved":  bson.M{"bsonType": "bool"},
			},
		},
	}
}

package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// MigrateLegacyTransactions rewrites rows from the old "transactions"
// collection (owner under "uid", no description or subscription flag) into
// the canonical expenses shape, then drops the migrated originals. The
// expenses collection is the single schema going forward; nothing reads the
// legacy collection after this runs.
func MigrateLegacyTransactions(ctx context.Context) (int, error) {
	legacy := MongoClient.Database(MongoDatabase).Collection(LegacyTxnCollection)
	now := time.Now()

	cursor, err := legacy.Find(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error reading legacy transactions: %v", err)
	}
	defer cursor.Close(ctx)

	migrated := 0
	for cursor.Next(ctx) {
		var txn models.LegacyTransaction
		if err := cursor.Decode(&txn); err != nil {
			return migrated, fmt.Errorf("error decoding legacy transaction: %v", err)
		}

		expense := txn.Canonical(now)
		if _, err := InsertExpense(ctx, &expense); err != nil {
			return migrated, fmt.Errorf("error migrating transaction %s: %v", txn.ID, err)
		}

		if _, err := legacy.DeleteOne(ctx, bson.M{"_id": txn.ID}); err != nil {
			return migrated, fmt.Errorf("error removing migrated transaction %s: %v", txn.ID, err)
		}
		migrated++
	}

	if err := cursor.Err(); err != nil {
		return migrated, fmt.Errorf("cursor error: %v", err)
	}

	logger.Get().Info("legacy transaction migration complete",
		zap.Int("migrated", migrated))
	return migrated, nil
}

// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app. The REST
// backend is not a DB dependency; its client is built in BuildHandler.
type DBDeps struct {
	ConsoleMongoClient   *mongo.Client
	ConsoleMongoDatabase *mongo.Database
}

package store

import (
	"context"
	"database/sql"
	"log"

	"go.mongodb.org/mongo-driver/mongo"

	"todos-be/internal/config"
	"todos-be/internal/database"
	"todos-be/internal/repository"
)

// Store bundles the selected persistence backend. The three backends
// share the same repository interfaces, so everything above this
// package is backend-agnostic.
type Store struct {
	Users   repository.UserRepository
	Todos   repository.TodoRepository
	Backend string // "mongodb", "postgres", "sqlite", or "memory"

	mongoClient *mongo.Client
	sqlDB       *sql.DB
}

// Open selects a backend at startup: MongoDB first, then the
// relational fallback, then volatile memory. It never fails; the
// memory store is always available.
func Open(ctx context.Context, cfg *config.Config) *Store {
	if cfg.MongoURI != "" {
		s, err := openMongo(ctx, cfg)
		if err == nil {
			log.Println("Connected to MongoDB (primary store)")
			return s
		}
		log.Printf("Warning: MongoDB unavailable (%v). Falling back to relational store.", err)
	}

	s, err := openSQL(ctx, cfg)
	if err == nil {
		log.Printf("Connected to %s (fallback store)", s.Backend)
		return s
	}
	log.Printf("Warning: relational store unavailable (%v). Falling back to in-memory store.", err)

	log.Println("Warning: using volatile in-memory store; data will not survive a restart")
	return &Store{
		Users:   repository.NewMemoryUserRepository(),
		Todos:   repository.NewMemoryTodoRepository(),
		Backend: "memory",
	}
}

func openMongo(ctx context.Context, cfg *config.Config) (*Store, error) {
	client, err := database.NewMongoConnection(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.MongoDB)
	users, err := repository.NewMongoUserRepository(ctx, db)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	todos, err := repository.NewMongoTodoRepository(ctx, db)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Store{
		Users:       users,
		Todos:       todos,
		Backend:     "mongodb",
		mongoClient: client,
	}, nil
}

func openSQL(ctx context.Context, cfg *config.Config) (*Store, error) {
	driver := "sqlite3"
	dsn := cfg.SQLitePath + "?_foreign_keys=on"
	backend := "sqlite"
	if cfg.DatabaseURL != "" {
		driver = "postgres"
		dsn = cfg.DatabaseURL
		backend = "postgres"
	}

	db, err := database.NewConnection(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db, driver); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		Users:   repository.NewSQLUserRepository(db),
		Todos:   repository.NewSQLTodoRepository(db),
		Backend: backend,
		sqlDB:   db,
	}, nil
}

// Close releases whatever backend connection is held.
func (s *Store) Close() {
	if s.mongoClient != nil {
		_ = s.mongoClient.Disconnect(context.Background())
	}
	if s.sqlDB != nil {
		_ = s.sqlDB.Close()
	}
}

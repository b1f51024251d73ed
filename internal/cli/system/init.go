package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/wishlog/internal/cli"
	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/storage"
	"github.com/julianstephens/wishlog/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting an existing database file before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

// copiedCollections lists every collection moved by --source, in order.
var copiedCollections = []string{
	constants.CollectionSettings,
	constants.CollectionWishes,
	constants.CollectionLogs,
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized wishlog storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return fmt.Errorf("--force only applies to file-based storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release file locks
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) copyData(ctx *cli.Context) error {
	source, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	for _, collection := range copiedCollections {
		docs, err := source.Query(ctx.Ctx, collection, storage.Query{})
		if err != nil {
			return fmt.Errorf("failed to read %s from source: %w", collection, err)
		}
		for _, doc := range docs {
			if _, err := ctx.Store.Insert(ctx.Ctx, collection, doc.Fields); err != nil {
				return fmt.Errorf("failed to copy %s document %s: %w", collection, doc.ID, err)
			}
		}
		fmt.Printf("  Copied %d %s\n", len(docs), collection)
	}
	return nil
}

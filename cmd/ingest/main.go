// Command ingest builds the retrieval index: it reads corpus files from a
// local directory or the configured S3 bucket, extracts and chunks their
// text, embeds the chunks and writes them to the database.
//
// Usage:
//
//	ingest -dir ./corpus            ingest local files
//	ingest -dir ./corpus -upload    also mirror them to the corpus bucket
//	ingest -prefix lectures/        ingest objects already in the bucket
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"

	"github.com/bee-edu/askbee/internal/config"
	"github.com/bee-edu/askbee/internal/core"
	db "github.com/bee-edu/askbee/internal/core/database"
	"github.com/bee-edu/askbee/internal/core/ingest"
	"github.com/bee-edu/askbee/internal/core/llm"
	"github.com/bee-edu/askbee/internal/core/objectstore"
)

func main() {
	dir := flag.String("dir", "", "ingest files from this local directory")
	prefix := flag.String("prefix", "", "ingest bucket objects under this key prefix")
	upload := flag.Bool("upload", false, "mirror local files to the corpus bucket before ingesting")
	flag.Parse()

	if *dir == "" && *prefix == "" {
		log.Fatal("nothing to do: pass -dir or -prefix")
	}

	ctx := context.Background()
	cfg := config.LoadConfig()

	dbClient, err := db.NewDatabaseClient(ctx, cfg.DatabaseURLs(), cfg.EmbedDim)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer dbClient.Close()

	embedder, err := llm.NewGeminiEmbedder(ctx, cfg.AIAPIKey, cfg.EmbedModel)
	if err != nil {
		log.Fatalf("embedder: %v", err)
	}
	defer embedder.Close()

	run := &runner{
		cfg:      cfg,
		plain:    ingest.NewIngestor(dbClient, embedder, ingest.PlainTextExtractor{}, ingest.DefaultConfig()),
		document: ingest.NewIngestor(dbClient, embedder, ingest.NewDocconvExtractor(false), ingest.DefaultConfig()),
	}

	if *dir != "" {
		if err := run.ingestDir(ctx, *dir, *upload); err != nil {
			log.Fatalf("ingest dir: %v", err)
		}
		return
	}
	if err := run.ingestBucket(ctx, *prefix); err != nil {
		log.Fatalf("ingest bucket: %v", err)
	}
}

type runner struct {
	cfg      *config.Config
	plain    *ingest.Ingestor
	document *ingest.Ingestor
}

func (r *runner) ingestDir(ctx context.Context, dir string, upload bool) error {
	var store core.ObjectClient
	if upload {
		var err error
		store, err = objectstore.NewS3Client(ctx, r.cfg)
		if err != nil {
			return err
		}
	}

	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if store != nil {
			key, _ := filepath.Rel(dir, path)
			contentType := docconv.MimeTypeByExtension(path)
			if _, err := store.UploadFile(ctx, r.cfg.BucketName, key, data, contentType); err != nil {
				return err
			}
		}

		return r.ingestOne(ctx, path, filepath.Base(path), data)
	})
}

func (r *runner) ingestBucket(ctx context.Context, prefix string) error {
	store, err := objectstore.NewS3Client(ctx, r.cfg)
	if err != nil {
		return err
	}

	keys, err := store.ListKeys(ctx, r.cfg.BucketName, prefix)
	if err != nil {
		return err
	}
	log.Printf("found %d objects under %q", len(keys), prefix)

	for _, key := range keys {
		data, err := store.GetFile(ctx, r.cfg.BucketName, key)
		if err != nil {
			return err
		}
		if err := r.ingestOne(ctx, "s3://"+r.cfg.BucketName+"/"+key, filepath.Base(key), data); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) ingestOne(ctx context.Context, source, title string, data []byte) error {
	switch strings.ToLower(filepath.Ext(title)) {
	case ".txt", ".md":
		return r.plain.IngestBytes(ctx, source, title, "text/plain", data)
	default:
		return r.document.IngestBytes(ctx, source, title, docconv.MimeTypeByExtension(title), data)
	}
}
